package smartsym

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction selects a mirror half-axis: the named side is the source
// half that gets reflected onto the opposite side.
type Direction int

const (
	PositiveX Direction = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

func (d Direction) String() string {
	switch d {
	case PositiveX:
		return "POSITIVE_X"
	case NegativeX:
		return "NEGATIVE_X"
	case PositiveY:
		return "POSITIVE_Y"
	case NegativeY:
		return "NEGATIVE_Y"
	case PositiveZ:
		return "POSITIVE_Z"
	case NegativeZ:
		return "NEGATIVE_Z"
	}
	return "UNKNOWN"
}

// DirectionFor maps an axis/sign pair to its direction token.
func DirectionFor(axis Axis, sign int) Direction {
	d := Direction(int(axis) * 2)
	if sign < 0 {
		d++
	}
	return d
}

func (d Direction) axisSign() (int, float32) {
	axis := int(d) / 2
	sign := float32(1)
	if int(d)%2 == 1 {
		sign = -1
	}
	return axis, sign
}

// Symmetrizer is the mirror-geometry primitive: reflect geometry across
// the plane through the origin perpendicular to the token's axis and
// merge coincident vertices within the threshold.
type Symmetrizer interface {
	Symmetrize(dir Direction, threshold float32) error
}

// Mesh is an indexed triangle mesh in object space.
type Mesh struct {
	Vertices []mgl32.Vec3
	Faces    [][3]int
}

var ErrEmptyMesh = errors.New("mesh has no geometry")

// Symmetrize mirrors the source half of the mesh (the half named by the
// direction token) onto the opposite side. Vertices within threshold of
// the mirror plane are snapped onto it and shared between both halves.
// Mirrored faces get flipped winding so normals stay consistent.
//
// Faces that straddle the plane by more than the threshold are dropped
// rather than clipped.
func (m *Mesh) Symmetrize(dir Direction, threshold float32) error {
	if len(m.Vertices) == 0 {
		return ErrEmptyMesh
	}
	axis, sign := dir.axisSign()

	// Keep vertices on the source side (or within threshold of the plane).
	remap := make([]int, len(m.Vertices))
	var kept []mgl32.Vec3
	for i, v := range m.Vertices {
		c := v[axis] * sign
		if c < -threshold {
			remap[i] = -1
			continue
		}
		if c <= threshold {
			v[axis] = 0
		}
		remap[i] = len(kept)
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return fmt.Errorf("no geometry on the %s side to mirror", dir)
	}

	// Mirror images of the kept vertices; on-plane vertices are shared.
	mirrorOf := make([]int, len(kept))
	verts := kept
	for i, v := range kept {
		if v[axis] == 0 {
			mirrorOf[i] = i
			continue
		}
		mv := v
		mv[axis] = -mv[axis]
		mirrorOf[i] = len(verts)
		verts = append(verts, mv)
	}

	var faces [][3]int
	for _, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		if a == b || b == c || a == c {
			continue
		}
		faces = append(faces, [3]int{a, b, c})

		ma, mb, mc := mirrorOf[a], mirrorOf[b], mirrorOf[c]
		if ma == a && mb == b && mc == c {
			// face lies entirely on the plane
			continue
		}
		// flipped winding for the reflected copy
		faces = append(faces, [3]int{ma, mc, mb})
	}

	m.Vertices = verts
	m.Faces = faces
	return nil
}
