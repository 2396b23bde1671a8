package stage

import (
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// overlayAnim fades a full-screen color overlay.
type overlayAnim struct {
	color      Color
	tween      *gween.Tween
	alpha      float64
	onComplete func()
	hold       bool // keep the final alpha after finishing (fade out)
}

// Camera applies screen-space effects to a scene: shake offsets and color
// overlays for flashes and fades.
type Camera struct {
	shakeTime      float64
	shakeIntensity float64
	offsetX        float64
	offsetY        float64

	overlay *overlayAnim
	rng     *rand.Rand
}

func newCamera(rng *rand.Rand) *Camera {
	return &Camera{rng: rng}
}

// Shake jitters the view for duration seconds by up to intensity pixels.
func (c *Camera) Shake(duration, intensity float64) {
	c.shakeTime = duration
	c.shakeIntensity = intensity
}

// Flash fills the screen with color, fading to transparent over duration.
func (c *Camera) Flash(duration float64, color Color) {
	c.overlay = &overlayAnim{
		color: color,
		tween: gween.New(1, 0, float32(duration), ease.OutQuad),
		alpha: 1,
	}
}

// FadeOut fades the screen to color over duration and then calls onComplete.
// The overlay stays opaque until FadeIn or another effect replaces it.
func (c *Camera) FadeOut(duration float64, color Color, onComplete func()) {
	c.overlay = &overlayAnim{
		color:      color,
		tween:      gween.New(0, 1, float32(duration), ease.Linear),
		onComplete: onComplete,
		hold:       true,
	}
}

// FadeIn fades from color to the scene over duration.
func (c *Camera) FadeIn(duration float64, color Color) {
	c.overlay = &overlayAnim{
		color: color,
		tween: gween.New(1, 0, float32(duration), ease.Linear),
		alpha: 1,
	}
}

// Offset returns the current shake offset.
func (c *Camera) Offset() (float64, float64) {
	return c.offsetX, c.offsetY
}

// OverlayAlpha returns the alpha of the current flash or fade overlay.
func (c *Camera) OverlayAlpha() float64 {
	if c.overlay == nil {
		return 0
	}
	return c.overlay.alpha
}

// update advances effects. Called from Scene.Step.
func (c *Camera) update(dt float64) {
	if c.shakeTime > 0 {
		c.shakeTime -= dt
		if c.shakeTime <= 0 {
			c.offsetX, c.offsetY = 0, 0
		} else {
			k := c.shakeIntensity
			c.offsetX = FloatBetween(c.rng, -k, k)
			c.offsetY = FloatBetween(c.rng, -k, k)
		}
	}
	if o := c.overlay; o != nil {
		v, done := o.tween.Update(float32(dt))
		o.alpha = float64(v)
		if done {
			if !o.hold {
				c.overlay = nil
			}
			if o.onComplete != nil {
				fn := o.onComplete
				o.onComplete = nil
				fn()
			}
		}
	}
}
