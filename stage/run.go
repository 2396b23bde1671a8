package stage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// TPS overrides ebiten's default tick rate when positive.
	TPS int
}

// sceneGame adapts a single Scene to ebiten.Game.
type sceneGame struct {
	scene *Scene
}

func (g *sceneGame) Update() error            { g.scene.Update(); return nil }
func (g *sceneGame) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }
func (g *sceneGame) Layout(_, _ int) (int, int) {
	return g.scene.Size()
}

// Game wraps a scene as an ebiten.Game with a fixed logical size.
func Game(s *Scene) ebiten.Game {
	return &sceneGame{scene: s}
}

// Run opens a window and runs game until it returns an error or the window
// is closed.
func Run(game ebiten.Game, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("stage: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("stage: run game: %w", err)
	}
	return nil
}
