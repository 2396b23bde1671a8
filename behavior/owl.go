package behavior

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/stage"
)

// OwlState is an owl animation state.
type OwlState uint8

const (
	OwlIdle OwlState = iota
	OwlCheering
	OwlEncouraging
	OwlSad
	OwlCelebrating
)

var owlStateNames = [...]string{"idle", "cheering", "encouraging", "sad", "celebrating"}

func (s OwlState) String() string {
	if int(s) < len(owlStateNames) {
		return owlStateNames[s]
	}
	return "unknown"
}

// OwlStates lists every owl state in order.
var OwlStates = []OwlState{OwlIdle, OwlCheering, OwlEncouraging, OwlSad, OwlCelebrating}

// OwlAnimKey returns the animation key of state.
func OwlAnimKey(s OwlState) string { return "wise_owl_" + s.String() }

// OwlSheetKey returns the sprite sheet key of state.
func OwlSheetKey(s OwlState) string { return OwlAnimKey(s) + "_sheet" }

const (
	owlDepth        = 300
	bubbleDepth     = 301
	bubbleEdge      = 20
	bubbleTop       = 10
	bubbleMinWidth  = 250
	bubbleMinHeight = 80
	bubblePadding   = 40
)

// Owl is the wise owl guide. Its root wanders the screen; the body child
// adds a gentle float and periodic circles on top of the wander.
type Owl struct {
	host   Host
	parent *stage.Node
	root   *stage.Node
	body   *stage.Node
	size   float64
	state  OwlState
	bounds Bounds

	floatY      float64
	circleX     float64
	circleY     float64
	wander      *stage.Tween
	floating    *stage.Tween
	circling    *stage.Tween
	circleTimer *stage.Timer

	bubble        *stage.Node
	bubbleW       float64
	bubbleH       float64
	dialogueTimer *stage.Timer
	destroyed     bool
}

// NewOwl creates the owl at (x, y) under parent. size is the on-screen
// height in pixels; 0 means 120.
func NewOwl(host Host, parent *stage.Node, x, y, size float64) *Owl {
	if size <= 0 {
		size = 120
	}
	w, h := host.Size()
	margin := size/2 + 20
	o := &Owl{
		host:   host,
		parent: parent,
		size:   size,
		bounds: Bounds{MinX: margin, MaxX: float64(w) - margin, MinY: margin, MaxY: float64(h) - margin},
	}

	o.root = stage.NewContainer("wise_owl")
	o.root.SetPosition(x, y)
	o.root.SetDepth(owlDepth)

	var img = stage.WhitePixel
	if sheet, ok := host.Textures().Get(OwlSheetKey(OwlIdle)); ok {
		img = sheet.Frame(0)
	} else {
		warnf("wise owl sheet %q not found", OwlSheetKey(OwlIdle))
	}
	o.body = stage.NewSprite("body", img)
	if fw, _ := o.body.Size(); fw > 1 {
		o.body.SetScale(size/fw, size/fw)
	} else {
		o.body.SetScale(size*0.6, size)
	}
	o.body.OnUpdate = func(float64) { o.layout() }
	o.root.AddChild(o.body)
	parent.AddChild(o.root)
	o.root.OnDispose(o.Destroy)

	o.play(OwlIdle)
	o.startWander()
	o.startFloat()
	o.circleTimer = host.Clock().DelayedCall(2, o.startCircle)
	return o
}

// Node returns the wandering root node.
func (o *Owl) Node() *stage.Node { return o.root }

// Body returns the animated sprite.
func (o *Owl) Body() *stage.Node { return o.body }

// State returns the current animation state.
func (o *Owl) State() OwlState { return o.state }

// Bounds returns the area the owl's center is kept in.
func (o *Owl) Bounds() Bounds { return o.bounds }

// Speaking reports whether a speech bubble is shown.
func (o *Owl) Speaking() bool { return o.bubble != nil }

// Bubble returns the speech bubble node, or nil.
func (o *Owl) Bubble() *stage.Node { return o.bubble }

// Position returns the owl's on-screen center.
func (o *Owl) Position() (float64, float64) {
	return o.root.X + o.body.X, o.root.Y + o.body.Y
}

func (o *Owl) play(s OwlState) {
	anims := o.host.Anims()
	if !anims.Exists(OwlAnimKey(s)) {
		if s != OwlIdle {
			warnf("animation %s does not exist, using idle", OwlAnimKey(s))
			o.play(OwlIdle)
		}
		return
	}
	if s != o.state {
		if key := OwlSheetKey(s); o.host.Textures().Exists(key) {
			_ = o.body.SetTexture(o.host.Textures(), key, 0)
		}
	}
	o.state = s
	if err := o.body.Play(anims, OwlAnimKey(s)); err != nil {
		warnf("play %s: %v", OwlAnimKey(s), err)
	}
}

// Cheer plays the cheering animation.
func (o *Owl) Cheer() { o.play(OwlCheering) }

// Encourage plays the encouraging animation.
func (o *Owl) Encourage() { o.play(OwlEncouraging) }

// ShowSadness plays the sad animation.
func (o *Owl) ShowSadness() { o.play(OwlSad) }

// Celebrate plays the celebrating animation.
func (o *Owl) Celebrate() { o.play(OwlCelebrating) }

// ReturnToIdle plays the idle animation.
func (o *Owl) ReturnToIdle() { o.play(OwlIdle) }

func (o *Owl) startWander() {
	if o.destroyed {
		return
	}
	rng := o.host.Rand()
	w, h := o.host.Size()
	dx := stage.FloatBetween(rng, -float64(w)*0.15, float64(w)*0.15)
	dy := stage.FloatBetween(rng, -float64(h)*0.1, float64(h)*0.1)
	tx, ty := o.bounds.Clamp(o.root.X+dx, o.root.Y+dy)
	dist := stage.Distance(o.root.X, o.root.Y, tx, ty)

	o.wander = o.host.Tweens().Add(stage.TweenConfig{
		Target:     o.root,
		Props:      []stage.Prop{stage.PropX(tx), stage.PropY(ty)},
		Duration:   math.Min(6000, 3000+dist/50) / 1000,
		Ease:       ease.InOutSine,
		OnComplete: o.startWander,
	})
}

func (o *Owl) startFloat() {
	if o.destroyed {
		return
	}
	o.floatY = 0
	o.floating = o.host.Tweens().Add(stage.TweenConfig{
		Props:      []stage.Prop{stage.PropValue(&o.floatY, -8)},
		Duration:   3,
		Yoyo:       true,
		Ease:       ease.InOutSine,
		OnComplete: o.startFloat,
	})
}

func (o *Owl) startCircle() {
	if o.destroyed {
		return
	}
	rng := o.host.Rand()
	w, h := o.host.Size()
	maxR := math.Max(30, math.Min(float64(w)*0.15, float64(h)*0.15))
	radius := stage.FloatBetween(rng, 30, maxR)
	o.circling = o.host.Tweens().AddCounter(0, 2*math.Pi, IntRange{5000, 8000}.Seconds(rng), ease.Linear,
		func(a float64) {
			sin, cos := math.Sincos(a)
			o.circleX = (cos - 1) * radius
			o.circleY = sin * radius
		},
		o.startCircle,
	)
}

// layout places the body from the float and circle offsets, keeps the owl
// inside its bounds and makes the bubble follow.
func (o *Owl) layout() {
	x, y := o.bounds.Clamp(o.root.X+o.circleX, o.root.Y+o.circleY+o.floatY)
	o.body.SetPosition(x-o.root.X, y-o.root.Y)
	o.placeBubble()
}

func (o *Owl) bubblePosition() (float64, float64) {
	w, _ := o.host.Size()
	ox, oy := o.Position()
	bx, by := ox, oy-o.size*0.9
	if right := float64(w) - bubbleEdge; bx+o.bubbleW/2 > right {
		bx = right - o.bubbleW/2
	}
	if bx-o.bubbleW/2 < bubbleEdge {
		bx = bubbleEdge + o.bubbleW/2
	}
	if by-o.bubbleH/2 < bubbleTop {
		by = o.bubbleH/2 + bubbleTop
	}
	return bx, by
}

func (o *Owl) placeBubble() {
	if o.bubble == nil {
		return
	}
	o.bubble.SetPosition(o.bubblePosition())
}

// ShowDialogue shows text in a speech bubble above the owl, replacing any
// current one. The bubble hides itself after duration seconds; 0 keeps it
// until HideDialogue.
func (o *Owl) ShowDialogue(text string, duration float64) {
	o.HideDialogue()
	if o.destroyed {
		return
	}
	w, _ := o.host.Size()
	o.bubbleW = math.Min(float64(w)*0.6, math.Max(bubbleMinWidth, float64(utf8.RuneCountInString(text))*10+60))

	label := stage.NewText("dialogue", text, stage.TextStyle{
		Size:        18,
		Color:       stage.ColorWhite,
		Align:       stage.TextAlignCenter,
		Bold:        true,
		Stroke:      stage.RGB(0x000000),
		StrokeWidth: 3,
		WrapWidth:   o.bubbleW - bubblePadding,
	})
	_, th := label.Size()
	o.bubbleH = math.Max(bubbleMinHeight, th+bubblePadding)

	o.bubble = stage.NewContainer("speech_bubble")
	o.bubble.SetDepth(bubbleDepth)
	o.bubble.AddChild(stage.NewSprite("background", o.bubbleTexture()))
	o.bubble.AddChild(label)
	o.bubble.SetScale(0, 0)
	o.placeBubble()
	o.parent.AddChild(o.bubble)

	o.host.Tweens().Add(stage.TweenConfig{
		Target:   o.bubble,
		Props:    stage.PropScale(1),
		Duration: 0.3,
		Ease:     ease.OutBack,
	})
	if duration > 0 {
		o.dialogueTimer = o.host.Clock().DelayedCall(duration, o.HideDialogue)
	}
}

// bubbleTexture returns the translucent rounded background for the current
// bubble size, generating it once per size.
func (o *Owl) bubbleTexture() *ebiten.Image {
	tex := o.host.Textures()
	bw, bh := int(o.bubbleW), int(o.bubbleH)
	key := fmt.Sprintf("speech_bubble_%d_%d", bw, bh)
	if sheet, ok := tex.Get(key); ok {
		return sheet.Frame(0)
	}
	g := stage.NewGraphics(bw+2, bh+2)
	g.FillStyle(stage.RGB(0x000000), 0.2)
	g.FillRoundedRect(2, 2, float64(bw), float64(bh), 25)
	g.FillStyle(stage.ColorWhite, 0.4)
	g.FillRoundedRect(0, 0, float64(bw), float64(bh), 25)
	g.FillStyle(stage.ColorWhite, 0.2)
	g.FillRoundedRect(5, 5, float64(bw-10), float64(bh-10), 20)
	return g.GenerateTexture(tex, key).Frame(0)
}

// HideDialogue shrinks and removes the speech bubble.
func (o *Owl) HideDialogue() {
	o.dialogueTimer.Remove()
	o.dialogueTimer = nil
	if o.bubble == nil {
		return
	}
	b := o.bubble
	o.bubble = nil
	if o.destroyed {
		b.Dispose()
		return
	}
	o.host.Tweens().Add(stage.TweenConfig{
		Target:     b,
		Props:      append(stage.PropScale(0), stage.PropAlpha(0)),
		Duration:   0.2,
		OnComplete: b.Dispose,
	})
}

// Destroy stops every movement, removes the bubble and disposes the owl.
// It is idempotent.
func (o *Owl) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.HideDialogue()
	o.circleTimer.Remove()
	for _, tw := range []*stage.Tween{o.wander, o.floating, o.circling} {
		if tw != nil {
			tw.Stop()
		}
	}
	o.host.Tweens().KillTweensOf(o.root)
	o.host.Tweens().KillTweensOf(o.body)
	o.root.Dispose()
}
