package smartsym

import (
	_ "embed"
)

//go:embed overlay.wgsl
var OverlayWGSL string
