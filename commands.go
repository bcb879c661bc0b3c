package smartsym

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Quit requests shutdown after the current frame completes.
func (cmd *Commands) Quit() *Commands {
	cmd.app.quit = true
	return cmd
}
