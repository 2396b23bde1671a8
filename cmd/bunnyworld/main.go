// Bunnyworld runs the game: a boot screen that paints every sprite, the
// world map menu and the level screens. Window size and debug switches come
// from the BUNNYWORLD_* environment variables.
package main

import (
	"log"

	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/screens"
	"github.com/phanxgames/bunnyworld/stage"
)

const windowTitle = "Bunnies & the World of Knowledge"

func main() {
	c, err := content.Load()
	if err != nil {
		log.Fatal(err)
	}
	debug := c.Flow.DebugMode
	if debug {
		c.Flow.LogConfig(log.Default())
	}

	m := screens.NewManager(c, screens.Options{ShowFPS: debug, Debug: debug})
	if err := m.Start(screens.BootKey); err != nil {
		log.Fatal(err)
	}
	defer m.Shutdown()

	if err := stage.Run(m, stage.RunConfig{
		Title:     windowTitle,
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		Resizable: true,
	}); err != nil {
		log.Fatal(err)
	}
}
