package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a node that displays the current FPS and TPS along
// with the scene's tween and timer counts. The widget refreshes every ~0.5
// seconds and draws on top of its siblings.
func NewFPSWidget(s *Scene) *Node {
	// 140x64 is enough for four short lines.
	img := ebiten.NewImage(140, 64)

	node := NewSprite("fps_widget", img)
	node.SetOrigin(0, 0)
	node.Depth = 1 << 20

	var lastUpdate float64

	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})

		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTweens: %d\nTimers: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), s.tweens.Len(), s.clock.Len()))
	}

	return node
}
