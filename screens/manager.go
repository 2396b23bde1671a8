package screens

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/content"
	"github.com/phanxgames/bunnyworld/ecs"
	"github.com/phanxgames/bunnyworld/sprites"
	"github.com/phanxgames/bunnyworld/stage"
)

// Options tune a Manager.
type Options struct {
	// Seed makes every scene's random source reproducible; 0 seeds from the
	// clock.
	Seed uint64
	// ShowFPS adds the FPS widget to every scene.
	ShowFPS bool
	// Debug enables the stage's debug checks and frame stats.
	Debug bool
	// Counts defaults to sprites.DefaultCounts.
	Counts sprites.Counts
	// Roster defaults to behavior.Roster.
	Roster []behavior.BunnyConfig
}

// Manager runs one screen at a time and implements ebiten.Game. Switches
// requested with Start happen at the beginning of the next frame.
type Manager struct {
	content       *content.Content
	opts          Options
	width, height int
	rng           *rand.Rand

	textures  *stage.Textures
	anims     *stage.Anims
	catalog   *sprites.Catalog
	factories map[string]Factory
	completed map[string]bool

	key     string
	pending string
	screen  Screen
	scene   *stage.Scene
	router  *ecs.Router
	hud     *HUD
}

// NewManager creates a manager for c with the four game screens registered.
// Call Start to pick the first screen.
func NewManager(c *content.Content, opts Options) *Manager {
	if opts.Counts == (sprites.Counts{}) {
		opts.Counts = sprites.DefaultCounts
	}
	if opts.Roster == nil {
		opts.Roster = behavior.Roster
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m := &Manager{
		content:   c,
		opts:      opts,
		width:     c.Window.Width,
		height:    c.Window.Height,
		rng:       rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d)),
		textures:  stage.NewTextures(),
		anims:     stage.NewAnims(),
		catalog:   &sprites.Catalog{},
		factories: make(map[string]Factory),
		completed: make(map[string]bool),
	}
	m.Register(BootKey, func() Screen { return &Boot{} })
	m.Register(MenuKey, func() Screen { return &Menu{} })
	m.Register(CountingForestKey, func() Screen { return &CountingForest{} })
	m.Register(MirrorCityKey, func() Screen { return &MirrorCity{} })
	return m
}

// Register binds key to f, replacing any previous factory.
func (m *Manager) Register(key string, f Factory) {
	m.factories[key] = f
}

// Start switches to key at the beginning of the next frame.
func (m *Manager) Start(key string) error {
	if m.factories[key] == nil {
		return fmt.Errorf("start %q: %w", key, ErrUnknownScreen)
	}
	m.pending = key
	return nil
}

// Complete marks the level key as played and moves on: back to the menu
// when levels are independent or key is the last one, else to the next
// level in the flow.
func (m *Manager) Complete(key string) {
	m.completed[key] = true
	next := MenuKey
	flow := m.content.Flow
	if !flow.IndependentLevels {
		if info := flow.NextScreen(key); info != nil && m.factories[info.Key] != nil {
			next = info.Key
		}
	}
	log.Printf("screens: %s complete, next %s", key, next)
	_ = m.Start(next)
}

// Completed reports whether the level key has been completed this session.
func (m *Manager) Completed(key string) bool { return m.completed[key] }

// Current returns the key of the running screen.
func (m *Manager) Current() string { return m.key }

// Screen returns the running screen.
func (m *Manager) Screen() Screen { return m.screen }

// Scene returns the running screen's scene.
func (m *Manager) Scene() *stage.Scene { return m.scene }

// Router returns the running screen's interaction router.
func (m *Manager) Router() *ecs.Router { return m.router }

// HUD returns the level overlay, or nil on screens without one.
func (m *Manager) HUD() *HUD { return m.hud }

// Content returns the game content.
func (m *Manager) Content() *content.Content { return m.content }

// Options returns the options the manager was created with, defaults filled.
func (m *Manager) Options() Options { return m.opts }

// Catalog returns what the boot screen generated.
func (m *Manager) Catalog() *sprites.Catalog { return m.catalog }

// SetCatalog records generated assets for later screens.
func (m *Manager) SetCatalog(c *sprites.Catalog) { m.catalog = c }

// Textures returns the texture registry shared by every scene.
func (m *Manager) Textures() *stage.Textures { return m.textures }

// Anims returns the animation registry shared by every scene.
func (m *Manager) Anims() *stage.Anims { return m.anims }

// Rand returns the manager's random source.
func (m *Manager) Rand() *rand.Rand { return m.rng }

// Size returns the logical screen size.
func (m *Manager) Size() (float64, float64) {
	return float64(m.width), float64(m.height)
}

// Update switches screens if requested and advances the running scene with
// real input.
func (m *Manager) Update() error {
	m.flush()
	if m.scene != nil {
		m.scene.Update()
	}
	return nil
}

// Step is Update with a fixed dt and injected input only.
func (m *Manager) Step(dt float64) {
	m.flush()
	if m.scene != nil {
		m.scene.Step(dt)
	}
}

// Draw renders the running scene.
func (m *Manager) Draw(screen *ebiten.Image) {
	if m.scene != nil {
		m.scene.Draw(screen)
	}
}

// Layout returns the fixed logical size.
func (m *Manager) Layout(_, _ int) (int, int) {
	return m.width, m.height
}

// Shutdown leaves the running screen.
func (m *Manager) Shutdown() {
	m.leave()
	m.pending = ""
}

func (m *Manager) flush() {
	if m.pending == "" {
		return
	}
	key := m.pending
	m.pending = ""
	m.switchTo(key)
}

func (m *Manager) leave() {
	if m.screen == nil {
		return
	}
	m.screen.Leave()
	m.scene.Shutdown()
	m.router.Close()
	m.screen, m.scene, m.router, m.hud = nil, nil, nil, nil
}

func (m *Manager) switchTo(key string) {
	from := m.key
	m.leave()

	s := stage.NewScene(m.width, m.height)
	s.UseAssets(m.textures, m.anims)
	s.SetSeed(m.rng.Uint64())
	s.SetDebugMode(m.opts.Debug)
	router := ecs.NewRouter(donburi.NewWorld())
	s.SetEntityStore(router.Store())

	m.key, m.scene, m.router = key, s, router
	m.screen = m.factories[key]()
	s.OnUpdate(func(float64) { router.Process() })
	m.screen.Enter(m)
	s.OnUpdate(m.screen.Update)

	if info := m.content.Flow.ScreenInfo(key); info != nil {
		m.hud = newHUD(m, info)
	}
	if m.opts.ShowFPS {
		s.Root().AddChild(stage.NewFPSWidget(s))
	}
	if from == "" {
		from = "-"
	}
	log.Printf("screens: %s -> %s", from, key)
}
