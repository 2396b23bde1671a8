package stage

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// commandType identifies the kind of draw command.
type commandType uint8

const (
	commandImage    commandType = iota // DrawImage
	commandParticle                    // one DrawImage per alive particle
)

// drawCommand is a single draw instruction emitted during scene traversal.
// Commands are emitted in painter order: depth-sorted siblings, parents
// before children.
type drawCommand struct {
	kind      commandType
	image     *ebiten.Image
	transform [6]float64
	color     Color
	emitter   *ParticleEmitter
}

// Draw traverses the scene tree, emits draw commands and submits them to
// screen. Camera shake offsets the whole tree; flash and fade overlays are
// drawn last.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	var stats debugStats
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	view := identityTransform
	if ox, oy := s.camera.Offset(); ox != 0 || oy != 0 {
		view[4], view[5] = ox, oy
	}

	s.commands = s.commands[:0]
	s.traverse(s.root, view, 1.0, true)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if a := s.camera.OverlayAlpha(); a > 0 && s.camera.overlay != nil {
		screen.Fill(s.camera.overlay.color.WithAlpha(a).toRGBA())
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}
}

// traverse walks the node tree depth-first, updating transforms and emitting
// draw commands for visible nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible || n.disposed {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			if n.Image != nil {
				s.commands = append(s.commands, drawCommand{
					kind:      commandImage,
					image:     n.Image,
					transform: n.worldTransform,
					color:     n.Color.WithAlpha(n.Color.A * n.worldAlpha),
				})
			}
		case NodeTypeText:
			if n.TextBlock != nil {
				if img := n.TextBlock.render(); img != nil {
					s.commands = append(s.commands, drawCommand{
						kind:      commandImage,
						image:     img,
						transform: n.worldTransform,
						color:     ColorWhite.WithAlpha(n.worldAlpha),
					})
				}
			}
		case NodeTypeParticleEmitter:
			if n.Emitter != nil && n.Emitter.alive > 0 {
				s.commands = append(s.commands, drawCommand{
					kind:      commandParticle,
					transform: n.worldTransform,
					color:     n.Color.WithAlpha(n.Color.A * n.worldAlpha),
					emitter:   n.Emitter,
				})
			}
		}
	}

	// The tree is walked even when this node is fully transparent: children
	// may still need fresh world transforms for hit testing.
	for _, child := range n.sorted() {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// submit draws the emitted commands in order.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.kind {
		case commandImage:
			op.GeoM.Reset()
			op.GeoM.SetElement(0, 0, cmd.transform[0])
			op.GeoM.SetElement(1, 0, cmd.transform[1])
			op.GeoM.SetElement(0, 1, cmd.transform[2])
			op.GeoM.SetElement(1, 1, cmd.transform[3])
			op.GeoM.SetElement(0, 2, cmd.transform[4])
			op.GeoM.SetElement(1, 2, cmd.transform[5])
			op.ColorScale.Reset()
			op.ColorScale.ScaleWithColor(cmd.color.toRGBA())
			target.DrawImage(cmd.image, &op)
		case commandParticle:
			submitParticles(target, cmd, &op)
		}
	}
}

// submitParticles draws each alive particle centered on its simulated
// position, in the emitter's local space.
func submitParticles(target *ebiten.Image, cmd *drawCommand, op *ebiten.DrawImageOptions) {
	e := cmd.emitter
	img := e.config.Image
	if img == nil {
		img = WhitePixel
	}
	b := img.Bounds()
	hw, hh := float64(b.Dx())/2, float64(b.Dy())/2
	m := cmd.transform
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		op.GeoM.Reset()
		op.GeoM.Translate(-hw, -hh)
		op.GeoM.Scale(p.scale, p.scale)
		op.GeoM.Translate(p.x, p.y)
		var world ebiten.GeoM
		world.SetElement(0, 0, m[0])
		world.SetElement(1, 0, m[1])
		world.SetElement(0, 1, m[2])
		world.SetElement(1, 1, m[3])
		world.SetElement(0, 2, m[4])
		world.SetElement(1, 2, m[5])
		op.GeoM.Concat(world)

		c := Color{
			R: p.tint.R * cmd.color.R,
			G: p.tint.G * cmd.color.G,
			B: p.tint.B * cmd.color.B,
			A: p.alpha * cmd.color.A,
		}
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(c.toRGBA())
		target.DrawImage(img, op)
	}
}
