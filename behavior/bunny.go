package behavior

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bunnyworld/stage"
)

// BunnyConfig describes one bunny character.
type BunnyConfig struct {
	Name        string
	Fur         uint32
	Ear         uint32
	Eye         uint32
	Personality string
	Accessories []string
}

// Key returns the lower-case name used in texture and animation keys.
func (c BunnyConfig) Key() string {
	return strings.ToLower(c.Name)
}

// Roster lists the eight bunny characters.
var Roster = []BunnyConfig{
	{Name: "Milo", Fur: 0xFFA500, Ear: 0xFF8C00, Eye: 0x4A90E2, Personality: "cheerful, energetic"},
	{Name: "Luna", Fur: 0xFFFFFF, Ear: 0xFFB6C1, Eye: 0x9370DB, Personality: "gentle, shy", Accessories: []string{"flower"}},
	{Name: "Bibo", Fur: 0xD3D3D3, Ear: 0xC0C0C0, Eye: 0x4A90E2, Personality: "curious explorer", Accessories: []string{"backpack"}},
	{Name: "Pinky", Fur: 0xFFB6C1, Ear: 0xFF69B4, Eye: 0xFF1493, Personality: "bubbly and sweet", Accessories: []string{"scarf"}},
	{Name: "Sunny", Fur: 0xFFD700, Ear: 0xFFA500, Eye: 0x4A90E2, Personality: "optimistic, always smiling"},
	{Name: "BluBlu", Fur: 0xADD8E6, Ear: 0x87CEEB, Eye: 0x0000CD, Personality: "calm and smart"},
	{Name: "Cocoa", Fur: 0x8B4513, Ear: 0xA0522D, Eye: 0x4A90E2, Personality: "brave and protective"},
	{Name: "Minty", Fur: 0x98FB98, Ear: 0x90EE90, Eye: 0x9370DB, Personality: "magical and mysterious", Accessories: []string{"hat"}},
}

// Action is a bunny behavior.
type Action uint8

const (
	Idle Action = iota
	RunRight
	RunLeft
	Jump
	Dance
	Victory
	Talk
	Sleep
	Hit
	Walk
)

var actionNames = [...]string{"idle", "runright", "runleft", "jump", "dance", "victory", "talk", "sleep", "hit", "walk"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// actionWeights are the relative odds of each action, in pick order.
var actionWeights = [...]struct {
	action Action
	weight int
}{
	{Idle, 30},
	{RunRight, 15},
	{RunLeft, 15},
	{Jump, 10},
	{Dance, 12},
	{Victory, 8},
	{Talk, 8},
	{Sleep, 5},
	{Hit, 3},
	{Walk, 10},
}

// totalActionWeight is the sum of actionWeights.
const totalActionWeight = 116

// pickAction maps r in [0, totalActionWeight) onto an action by
// subtracting weights in order.
func pickAction(r int) Action {
	for _, w := range actionWeights {
		r -= w.weight
		if r < 0 {
			return w.action
		}
	}
	return Idle
}

// BunnyAnimKey returns the animation key of a bunny action animation.
func BunnyAnimKey(name, anim string) string {
	return fmt.Sprintf("bunny_%s_%s", name, anim)
}

// BunnySheetKey returns the sprite sheet key of a bunny animation.
func BunnySheetKey(name, anim string) string {
	return BunnyAnimKey(name, anim) + "_sheet"
}

const (
	bunnyDepth       = 100
	bunnyScale       = 1.2
	bunnyHitRadius   = 40
	bunnyMinDistance = 80
	bunnyEdge        = 50
	bunnyGroundFrac  = 0.7
)

// Bunny plays weighted random behaviors on a menu bunny. The root node
// carries position, depth and hit area; the body child shows the sprite and
// floats gently.
type Bunny struct {
	host Host
	cfg  BunnyConfig
	name string
	root *stage.Node
	body *stage.Node

	action    Action
	anim      string
	moving    bool
	homeY     float64
	timer     *stage.Timer
	gen       int
	onAnimEnd func()
	destroyed bool
}

// NewBunny attaches a behavior controller to root, whose animated sprite is
// body, and starts the behavior loop.
func NewBunny(host Host, root, body *stage.Node, cfg BunnyConfig) *Bunny {
	b := &Bunny{host: host, cfg: cfg, name: cfg.Key(), root: root, body: body, homeY: root.Y}
	root.SetDepth(bunnyDepth)
	body.OnAnimationComplete = b.animationComplete
	if key := BunnySheetKey(b.name, "idle"); host.Textures().Exists(key) {
		_ = body.SetTexture(host.Textures(), key, 0)
	}
	root.OnDispose(b.Destroy)
	b.next()
	return b
}

// Root returns the positioned node.
func (b *Bunny) Root() *stage.Node { return b.root }

// Body returns the animated sprite.
func (b *Bunny) Body() *stage.Node { return b.body }

// Config returns the character configuration.
func (b *Bunny) Config() BunnyConfig { return b.cfg }

// Action returns the running behavior.
func (b *Bunny) Action() Action { return b.action }

// Animation returns the name of the last animation started.
func (b *Bunny) Animation() string { return b.anim }

// HomeY returns the ground line the bunny hops and bounces from.
func (b *Bunny) HomeY() float64 { return b.homeY }

// Moving reports whether a run or walk is in progress.
func (b *Bunny) Moving() bool { return b.moving }

// Destroyed reports whether Destroy has run.
func (b *Bunny) Destroyed() bool { return b.destroyed }

// Ground returns the band bunnies stay in on a w x h screen.
func Ground(w, h float64) Bounds {
	return Bounds{MinX: bunnyEdge, MaxX: w - bunnyEdge, MinY: h * bunnyGroundFrac, MaxY: h - bunnyEdge}
}

func (b *Bunny) size() (float64, float64) {
	w, h := b.host.Size()
	return float64(w), float64(h)
}

// current wraps fn so it only runs while the behavior that created it is
// still the active one.
func (b *Bunny) current(fn func()) func() {
	gen := b.gen
	return func() {
		if !b.destroyed && gen == b.gen {
			fn()
		}
	}
}

// schedule makes fn the pending behavior timer.
func (b *Bunny) schedule(delay float64, fn func()) {
	b.timer = b.host.Clock().DelayedCall(delay, b.current(fn))
}

func (b *Bunny) next() {
	if b.destroyed {
		return
	}
	b.Execute(pickAction(stage.IntBetween(b.host.Rand(), 0, totalActionWeight-1)))
}

// Execute cancels the pending behavior timer and the root's tweens, then
// starts a. An interrupted hop or bounce lands back on the bunny's ground
// line; an interrupted run keeps the ground it covered.
func (b *Bunny) Execute(a Action) {
	if b.destroyed {
		return
	}
	b.action = a
	b.gen++
	b.timer.Remove()
	b.onAnimEnd = nil
	b.host.Tweens().KillTweensOf(b.root)
	if b.moving {
		b.homeY = b.root.Y
	}
	b.moving = false
	x, y := Ground(b.size()).Clamp(b.root.X, b.homeY)
	b.homeY = y
	b.root.SetPosition(x, y)
	b.root.SetAngle(0)
	b.root.SetScale(1, 1)

	switch a {
	case Idle:
		b.idle()
	case RunRight, RunLeft:
		b.run(a == RunRight, a.String(), IntRange{50, 150}, 1000, 2, true)
	case Walk:
		right := stage.IntBetween(b.host.Rand(), 0, 1) == 0
		anim := RunLeft.String()
		if right {
			anim = RunRight.String()
		}
		b.run(right, anim, IntRange{30, 80}, 1500, 3, false)
	case Jump:
		b.jump()
	case Dance:
		b.dance()
	case Victory:
		b.victory()
	case Talk:
		b.talk()
	case Sleep:
		b.sleep()
	case Hit:
		b.hit()
	}
}

// React is the click reaction: it interrupts the current behavior with a
// victory, jump or dance.
func (b *Bunny) React() {
	reactions := [...]Action{Victory, Jump, Dance}
	b.Execute(reactions[stage.IntBetween(b.host.Rand(), 0, len(reactions)-1)])
}

// play shows the named animation, falling back to the first frame of its
// sheet, then to the idle sheet. It reports whether an animation is running.
func (b *Bunny) play(anim string) bool {
	tex, anims := b.host.Textures(), b.host.Anims()
	if key := BunnyAnimKey(b.name, anim); anims.Exists(key) {
		if err := b.body.Play(anims, key); err != nil {
			warnf("play %s for %s: %v", anim, b.name, err)
			return false
		}
		b.anim = anim
		return true
	}
	for _, key := range []string{BunnySheetKey(b.name, anim), BunnySheetKey(b.name, "idle")} {
		if tex.Exists(key) {
			_ = b.body.SetTexture(tex, key, 0)
			return false
		}
	}
	warnf("no %s animation or sheet for %s, keeping current visual", anim, b.name)
	return false
}

func (b *Bunny) animationComplete(string) {
	if fn := b.onAnimEnd; fn != nil {
		b.onAnimEnd = nil
		fn()
	}
}

func (b *Bunny) idle() {
	b.play("idle")
	b.moving = false
	b.schedule(IntRange{3000, 6000}.Seconds(b.host.Rand()), b.next)
}

func (b *Bunny) run(right bool, anim string, dist IntRange, baseMS, perPixel int, vertical bool) {
	rng := b.host.Rand()
	w, h := b.size()
	b.play(anim)
	b.moving = true

	d := dist.Random(rng)
	tx := max(b.root.X-float64(d), bunnyEdge)
	if right {
		tx = min(b.root.X+float64(d), w-bunnyEdge)
	}
	props := []stage.Prop{stage.PropX(tx)}
	if vertical {
		ty := stage.Clamp(b.root.Y+float64(stage.IntBetween(rng, -15, 15)), h*bunnyGroundFrac, h-bunnyEdge)
		props = append(props, stage.PropY(ty))
	}
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    props,
		Duration: ms(baseMS + d*perPixel),
		OnComplete: b.current(func() {
			b.moving = false
			b.homeY = b.root.Y
			b.schedule(0.5, b.next)
		}),
	})
}

func (b *Bunny) jump() {
	rng := b.host.Rand()
	b.moving = false
	if b.play("jump") {
		b.onAnimEnd = func() { b.play("idle") }
	}
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropX(b.root.X + float64(stage.IntBetween(rng, 30, 80))), stage.PropY(b.root.Y - 40)},
		Duration: 0.3,
		Ease:     ease.OutCubic,
		Yoyo:     true,
		OnComplete: b.current(func() {
			b.schedule(0.5, b.next)
		}),
	})
}

func (b *Bunny) dance() {
	b.play("dance")
	b.moving = false
	durMS := IntRange{2000, 4000}.Random(b.host.Rand())

	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropY(b.root.Y - 10)},
		Duration: 0.3,
		Yoyo:     true,
		Repeat:   durMS / 300,
		Ease:     ease.InOutSine,
	})
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropAngle(5)},
		Duration: 0.4,
		Yoyo:     true,
		Repeat:   durMS / 400,
		Ease:     ease.InOutSine,
	})
	b.schedule(ms(durMS), func() {
		b.root.SetAngle(0)
		b.next()
	})
}

func (b *Bunny) victory() {
	b.play("victory")
	b.moving = false
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    append([]stage.Prop{stage.PropY(b.root.Y - 30)}, stage.PropScale(1.2)...),
		Duration: 0.4,
		Yoyo:     true,
		Ease:     ease.OutBounce,
	})
	b.schedule(IntRange{2000, 3000}.Seconds(b.host.Rand()), func() {
		b.root.SetScale(1, 1)
		b.next()
	})
}

func (b *Bunny) talk() {
	b.play("talk")
	b.moving = false
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropY(b.root.Y - 3)},
		Duration: 0.3,
		Yoyo:     true,
		Repeat:   3,
		Ease:     ease.InOutSine,
	})
	b.schedule(IntRange{2000, 3500}.Seconds(b.host.Rand()), b.next)
}

func (b *Bunny) sleep() {
	b.play("sleep")
	b.moving = false
	durMS := IntRange{4000, 8000}.Random(b.host.Rand())
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropScaleY(0.95)},
		Duration: 1.5,
		Yoyo:     true,
		Repeat:   durMS / 1500,
		Ease:     ease.InOutSine,
	})
	b.schedule(ms(durMS), b.next)
}

func (b *Bunny) hit() {
	b.moving = false
	b.host.Tweens().Add(stage.TweenConfig{
		Target:   b.root,
		Props:    []stage.Prop{stage.PropX(b.root.X - 5)},
		Duration: 0.05,
		Yoyo:     true,
		Repeat:   3,
		Ease:     ease.OutCubic,
	})
	if b.play("hit") {
		b.onAnimEnd = func() {
			b.play("idle")
			b.schedule(1, b.next)
		}
		return
	}
	b.schedule(1, b.next)
}

// Update keeps bunnies apart inside the ground band. A push moves the
// bunny's ground line with it.
func (b *Bunny) Update(siblings []*stage.Node) {
	if b.destroyed {
		return
	}
	y := b.root.Y
	Avoid(b.root, siblings, bunnyMinDistance, Ground(b.size()))
	if !b.moving {
		_, b.homeY = Ground(b.size()).Clamp(b.root.X, b.homeY+b.root.Y-y)
	}
}

// Destroy cancels the behavior timer and the tweens of both nodes. It is
// idempotent and runs automatically when the root is disposed.
func (b *Bunny) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.timer.Remove()
	b.onAnimEnd = nil
	b.host.Tweens().KillTweensOf(b.root)
	b.host.Tweens().KillTweensOf(b.body)
}

// CreateBunny adds a bunny at (x, y) under parent. The body uses the idle
// sheet when generated, else a plain circle in the fur color. The root gets
// a circular hit area and the controller under DataKey.
func CreateBunny(host Host, parent *stage.Node, x, y float64, cfg BunnyConfig) *Bunny {
	root := stage.NewContainer("bunny_" + cfg.Key())
	root.SetPosition(x, y)
	root.Interactable = true
	root.HitShape = stage.HitCircle{Radius: bunnyHitRadius}

	var body *stage.Node
	if sheet, ok := host.Textures().Get(BunnySheetKey(cfg.Key(), "idle")); ok {
		body = stage.NewSprite("body", sheet.Frame(0))
	} else {
		warnf("bunny %s has no idle sheet, drawing a plain circle", cfg.Key())
		g := stage.NewGraphics(50, 50)
		g.FillStyle(stage.RGB(cfg.Fur), 1)
		g.FillCircle(25, 25, 25)
		body = stage.NewSprite("body", g.Canvas())
	}
	body.SetScale(bunnyScale, bunnyScale)
	root.AddChild(body)
	parent.AddChild(root)

	b := NewBunny(host, root, body, cfg)
	root.SetData(DataKey, b)

	host.Tweens().Add(stage.TweenConfig{
		Target:   body,
		Props:    []stage.Prop{stage.PropY(-5)},
		Duration: 2,
		Yoyo:     true,
		Repeat:   -1,
		Ease:     ease.InOutSine,
	})
	return b
}

// BunnyOf returns the controller attached to n by CreateBunny, or nil.
func BunnyOf(n *stage.Node) *Bunny {
	b, _ := n.GetData(DataKey).(*Bunny)
	return b
}
