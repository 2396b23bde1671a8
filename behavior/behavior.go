// Package behavior drives the autonomous characters of the game: ambient
// creatures (fireflies, birds, butterflies, magic particles), the menu
// bunnies and the wise owl. Each controller owns one node and keeps it busy
// with randomized motion patterns built from scene tweens and timers.
//
// Controllers are single-threaded and run inside Scene.Step. Destroy stops
// every pending callback so a destroyed controller never touches its node
// again.
package behavior

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/phanxgames/bunnyworld/stage"
)

// DataKey is the node data key a controller is stored under.
const DataKey = "behaviorSystem"

// Host is what a controller needs from the framework. *stage.Scene
// satisfies it.
type Host interface {
	Tweens() *stage.Tweens
	Clock() *stage.Clock
	Size() (w, h int)
	Textures() *stage.Textures
	Anims() *stage.Anims
	Rand() *rand.Rand
}

// Bounds is the rectangle a character is kept inside.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Clamp returns (x, y) limited to the bounds.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return stage.Clamp(x, b.MinX, b.MaxX), stage.Clamp(y, b.MinY, b.MaxY)
}

// Contains reports whether (x, y) lies inside the bounds, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// RandomPoint returns a uniformly distributed point inside the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) (float64, float64) {
	return stage.FloatBetween(rng, b.MinX, b.MaxX), stage.FloatBetween(rng, b.MinY, b.MaxY)
}

// IntRange is an inclusive integer range, used for the pixel and
// millisecond constants of the motion profiles.
type IntRange struct {
	Min, Max int
}

// Random returns an int in [Min, Max].
func (r IntRange) Random(rng *rand.Rand) int {
	return stage.IntBetween(rng, r.Min, r.Max)
}

// Seconds returns a random duration in seconds for a range in milliseconds.
func (r IntRange) Seconds(rng *rand.Rand) float64 {
	return ms(r.Random(rng))
}

func ms(v int) float64 {
	return float64(v) / 1000
}

// QuadBezier evaluates the quadratic Bézier curve from p0 through control c
// to p1 at t in [0, 1].
func QuadBezier(p0, c, p1 stage.Vec2, t float64) stage.Vec2 {
	u := 1 - t
	return stage.Vec2{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// Avoid pushes self away from every other active node closer than minDist.
// Each push moves self by half the overlap along the line from the other
// node, then clamps to bounds. Coincident nodes push along +X.
func Avoid(self *stage.Node, others []*stage.Node, minDist float64, bounds Bounds) {
	if !self.Active() {
		return
	}
	for _, other := range others {
		if other == self || !other.Active() {
			continue
		}
		d := stage.Distance(self.X, self.Y, other.X, other.Y)
		if d >= minDist {
			continue
		}
		angle := stage.AngleBetween(other.X, other.Y, self.X, self.Y)
		push := (minDist - d) * 0.5
		sin, cos := math.Sincos(angle)
		x, y := bounds.Clamp(self.X+cos*push, self.Y+sin*push)
		self.SetPosition(x, y)
	}
}

// heading converts a travel angle in radians to the sprite angle in degrees.
// Sprites are drawn facing up, hence the quarter turn.
func heading(rad float64) float64 {
	return rad*57.3 + 90
}

func warnf(format string, args ...any) {
	log.Printf("behavior: "+format, args...)
}

// showFrame plays animKey when registered, else shows frame 0 of sheetKey.
// It reports whether anything was applied.
func showFrame(h Host, n *stage.Node, animKey, sheetKey string) bool {
	if animKey != "" && h.Anims().Exists(animKey) {
		return n.Play(h.Anims(), animKey) == nil
	}
	if sheetKey != "" && h.Textures().Exists(sheetKey) {
		return n.SetTexture(h.Textures(), sheetKey, 0) == nil
	}
	return false
}

// timerSet tracks pending timers so they can be cancelled together.
type timerSet struct {
	timers []*stage.Timer
}

func (s *timerSet) add(t *stage.Timer) *stage.Timer {
	kept := s.timers[:0]
	for _, old := range s.timers {
		if old.Active() {
			kept = append(kept, old)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = append(kept, t)
	return t
}

func (s *timerSet) removeAll() {
	for _, t := range s.timers {
		t.Remove()
	}
	clear(s.timers)
	s.timers = s.timers[:0]
}

func (s *timerSet) pending() int {
	count := 0
	for _, t := range s.timers {
		if t.Active() {
			count++
		}
	}
	return count
}
