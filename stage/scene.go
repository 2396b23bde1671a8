package stage

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, its textures and
// animations, the tween and timer schedulers, the camera effects, and input
// state.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	width, height int

	// ClearColor fills the screen before the tree is drawn when its alpha is
	// non-zero.
	ClearColor Color

	textures *Textures
	anims    *Anims
	tweens   Tweens
	clock    Clock
	camera   *Camera
	rng      *rand.Rand

	updateHooks []func(dt float64)

	// Render state
	commands []drawCommand

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchIDs     []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
}

// NewScene creates a w x h scene with a pre-created root container and its
// own texture and animation registries.
func NewScene(w, h int) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	return &Scene{
		root:         root,
		width:        w,
		height:       h,
		textures:     NewTextures(),
		anims:        NewAnims(),
		camera:       newCamera(rng),
		rng:          rng,
		commands:     make([]drawCommand, 0, defaultCommandCap),
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Size returns the logical scene size.
func (s *Scene) Size() (int, int) { return s.width, s.height }

// Width returns the logical scene width.
func (s *Scene) Width() float64 { return float64(s.width) }

// Height returns the logical scene height.
func (s *Scene) Height() float64 { return float64(s.height) }

// Textures returns the scene's texture registry.
func (s *Scene) Textures() *Textures { return s.textures }

// Anims returns the scene's animation registry.
func (s *Scene) Anims() *Anims { return s.anims }

// UseAssets makes the scene share texture and animation registries, so
// generated sprites survive across scenes.
func (s *Scene) UseAssets(tex *Textures, anims *Anims) {
	if tex != nil {
		s.textures = tex
	}
	if anims != nil {
		s.anims = anims
	}
}

// Tweens returns the scene's tween manager.
func (s *Scene) Tweens() *Tweens { return &s.tweens }

// Clock returns the scene's timer scheduler.
func (s *Scene) Clock() *Clock { return &s.clock }

// Camera returns the scene's camera effects.
func (s *Scene) Camera() *Camera { return s.camera }

// Rand returns the scene's random source.
func (s *Scene) Rand() *rand.Rand { return s.rng }

// SetSeed reseeds the scene's random source, for reproducible runs.
func (s *Scene) SetSeed(seed uint64) {
	*s.rng = *rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and per-frame
// timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// OnUpdate registers fn to run once per Step after tweens and timers.
func (s *Scene) OnUpdate(fn func(dt float64)) {
	s.updateHooks = append(s.updateHooks, fn)
}

// Update reads real input, unless injected input is queued, and advances the
// scene by one tick.
func (s *Scene) Update() {
	if len(s.injectQueue) == 0 {
		updateWorldTransform(s.root, identityTransform, 1.0, false)
		s.processInput()
	}
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by dt seconds: one queued injected pointer event,
// frame animations and node hooks, tweens, timers, camera effects, then the
// scene update hooks.
func (s *Scene) Step(dt float64) {
	// Refresh world transforms first so hit testing and hooks have accurate
	// positions this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInjectedInput()

	updateAnimations(s.root, dt)
	s.tweens.Update(dt)
	s.clock.Advance(dt)
	s.camera.update(dt)
	for _, fn := range s.updateHooks {
		fn(dt)
	}
}

// Shutdown stops every tween and timer and disposes the node tree. The scene
// must not be used afterwards.
func (s *Scene) Shutdown() {
	s.tweens.KillAll()
	s.clock.RemoveAll()
	s.updateHooks = nil
	s.handlers = handlerRegistry{}
	s.injectQueue = nil
	s.root.Dispose()
}
