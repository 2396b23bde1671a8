package stage

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrTextureNotFound is returned when a sprite sheet key is not registered.
var ErrTextureNotFound = errors.New("texture not found")

// ErrAnimationNotFound is returned when an animation key is not registered.
var ErrAnimationNotFound = errors.New("animation not found")

// SpriteSheet is a horizontal strip of equally sized frames.
type SpriteSheet struct {
	Key    string
	Image  *ebiten.Image
	FrameW int
	FrameH int
	frames []*ebiten.Image
}

// NewSpriteSheet slices img into frameW x frameH frames, left to right.
// A frame size of zero uses the whole image as a single frame.
func NewSpriteSheet(key string, img *ebiten.Image, frameW, frameH int) *SpriteSheet {
	b := img.Bounds()
	if frameW <= 0 || frameW > b.Dx() {
		frameW = b.Dx()
	}
	if frameH <= 0 || frameH > b.Dy() {
		frameH = b.Dy()
	}
	count := b.Dx() / frameW
	frames := make([]*ebiten.Image, count)
	for i := range frames {
		r := image.Rect(b.Min.X+i*frameW, b.Min.Y, b.Min.X+(i+1)*frameW, b.Min.Y+frameH)
		frames[i] = img.SubImage(r).(*ebiten.Image)
	}
	return &SpriteSheet{Key: key, Image: img, FrameW: frameW, FrameH: frameH, frames: frames}
}

// FrameCount returns the number of frames in the strip.
func (s *SpriteSheet) FrameCount() int {
	return len(s.frames)
}

// Frame returns frame i, wrapping out-of-range indices.
func (s *SpriteSheet) Frame(i int) *ebiten.Image {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	i %= n
	if i < 0 {
		i += n
	}
	return s.frames[i]
}

// Textures is a registry of sprite sheets keyed by name.
type Textures struct {
	sheets map[string]*SpriteSheet
}

// NewTextures creates an empty registry.
func NewTextures() *Textures {
	return &Textures{sheets: make(map[string]*SpriteSheet)}
}

// Add registers sheet under its key, replacing any previous sheet.
func (t *Textures) Add(sheet *SpriteSheet) {
	t.sheets[sheet.Key] = sheet
}

// Exists reports whether key is registered.
func (t *Textures) Exists(key string) bool {
	_, ok := t.sheets[key]
	return ok
}

// Get returns the sheet for key.
func (t *Textures) Get(key string) (*SpriteSheet, bool) {
	s, ok := t.sheets[key]
	return s, ok
}

// Remove unregisters key and deallocates its image.
func (t *Textures) Remove(key string) {
	if s, ok := t.sheets[key]; ok {
		s.Image.Deallocate()
		delete(t.sheets, key)
	}
}

// Keys returns the registered keys in sorted order.
func (t *Textures) Keys() []string {
	keys := make([]string, 0, len(t.sheets))
	for k := range t.sheets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AnimationDef describes a frame animation over a sprite sheet.
type AnimationDef struct {
	Key      string
	SheetKey string
	// Frames lists frame indices; empty means every frame in order.
	Frames    []int
	FrameRate float64
	// Repeat is the number of extra loops; -1 loops forever.
	Repeat int

	sheet *SpriteSheet
}

// Anims is a registry of frame animations.
type Anims struct {
	defs map[string]*AnimationDef
}

// NewAnims creates an empty registry.
func NewAnims() *Anims {
	return &Anims{defs: make(map[string]*AnimationDef)}
}

// Create registers def, resolving its sheet from tex.
func (a *Anims) Create(def AnimationDef, tex *Textures) error {
	sheet, ok := tex.Get(def.SheetKey)
	if !ok {
		return fmt.Errorf("create animation %q: sheet %q: %w", def.Key, def.SheetKey, ErrTextureNotFound)
	}
	if len(def.Frames) == 0 {
		def.Frames = make([]int, sheet.FrameCount())
		for i := range def.Frames {
			def.Frames[i] = i
		}
	}
	if def.FrameRate <= 0 {
		def.FrameRate = 10
	}
	def.sheet = sheet
	a.defs[def.Key] = &def
	return nil
}

// Exists reports whether key is registered.
func (a *Anims) Exists(key string) bool {
	_, ok := a.defs[key]
	return ok
}

// Get returns the animation registered under key.
func (a *Anims) Get(key string) (*AnimationDef, bool) {
	d, ok := a.defs[key]
	return d, ok
}

// Remove unregisters key.
func (a *Anims) Remove(key string) {
	delete(a.defs, key)
}

// animPlayer advances a node through an animation's frames.
type animPlayer struct {
	def   *AnimationDef
	index int
	acc   float64
	loops int
	done  bool
}

// Play starts the animation registered under key on the node. Playing the
// animation that is already running is a no-op.
func (n *Node) Play(anims *Anims, key string) error {
	def, ok := anims.Get(key)
	if !ok {
		return fmt.Errorf("play %q: %w", key, ErrAnimationNotFound)
	}
	if n.anim != nil && n.anim.def == def && !n.anim.done {
		return nil
	}
	n.anim = &animPlayer{def: def}
	n.sheet = def.sheet
	n.frame = def.Frames[0]
	n.Image = def.sheet.Frame(n.frame)
	n.transformDirty = true
	return nil
}

// StopAnimation freezes the node on its current frame.
func (n *Node) StopAnimation() {
	n.anim = nil
}

// CurrentAnimation returns the key of the playing animation, or "".
func (n *Node) CurrentAnimation() string {
	if n.anim == nil || n.anim.done {
		return ""
	}
	return n.anim.def.Key
}

// SetTexture shows frame of the sheet registered under key and stops any
// running animation.
func (n *Node) SetTexture(tex *Textures, key string, frame int) error {
	sheet, ok := tex.Get(key)
	if !ok {
		return fmt.Errorf("set texture %q: %w", key, ErrTextureNotFound)
	}
	n.anim = nil
	n.sheet = sheet
	n.frame = frame
	n.Image = sheet.Frame(frame)
	n.transformDirty = true
	return nil
}

// SheetKey returns the key of the sheet the node displays, or "".
func (n *Node) SheetKey() string {
	if n.sheet == nil {
		return ""
	}
	return n.sheet.Key
}

// update advances the player; it reports true on the tick the animation ends.
func (p *animPlayer) update(n *Node, dt float64) bool {
	if p.done {
		return false
	}
	p.acc += dt
	step := 1 / p.def.FrameRate
	for p.acc >= step {
		p.acc -= step
		p.index++
		if p.index >= len(p.def.Frames) {
			p.loops++
			if p.def.Repeat >= 0 && p.loops > p.def.Repeat {
				p.index = len(p.def.Frames) - 1
				p.done = true
				return true
			}
			p.index = 0
		}
		n.frame = p.def.Frames[p.index]
		n.Image = p.def.sheet.Frame(n.frame)
	}
	return false
}

// updateAnimations walks the tree advancing frame players and per-node
// update hooks.
func updateAnimations(n *Node, dt float64) {
	if n.disposed {
		return
	}
	if p := n.anim; p != nil && p.update(n, dt) {
		if n.OnAnimationComplete != nil {
			n.OnAnimationComplete(p.def.Key)
		}
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.Emitter != nil {
		n.Emitter.update(n, dt)
	}
	// Callbacks may dispose children; re-check the slot after each visit.
	for i := 0; i < len(n.children); i++ {
		child := n.children[i]
		updateAnimations(child, dt)
		if i < len(n.children) && n.children[i] != child {
			i--
		}
	}
}
