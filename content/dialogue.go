package content

import (
	"math/rand/v2"
	"time"

	"github.com/phanxgames/bunnyworld/stage"
)

// Line is a timed owl speech bubble. Duration is in milliseconds in the
// data file.
type Line struct {
	Text     string `yaml:"text"`
	Duration int    `yaml:"duration"`
}

// Seconds returns the line's display time in seconds.
func (l Line) Seconds() float64 {
	return (time.Duration(l.Duration) * time.Millisecond).Seconds()
}

// Dialogue is the Mirror City owl script.
type Dialogue struct {
	Intro    []Line   `yaml:"intro"`
	Correct  []string `yaml:"correct"`
	Wrong    []string `yaml:"wrong"`
	Complete string   `yaml:"complete"`
}

// RandomCorrect returns a random praise line.
func (d Dialogue) RandomCorrect(rng *rand.Rand) string {
	if len(d.Correct) == 0 {
		return ""
	}
	return stage.Pick(rng, d.Correct)
}

// RandomWrong returns a random encouragement line.
func (d Dialogue) RandomWrong(rng *rand.Rand) string {
	if len(d.Wrong) == 0 {
		return ""
	}
	return stage.Pick(rng, d.Wrong)
}
