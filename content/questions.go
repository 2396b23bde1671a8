package content

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/phanxgames/bunnyworld/stage"
)

// MaxSum bounds the numbers used in counting-forest questions.
const MaxSum = 10

// Question is one bridge plank: an arithmetic prompt with three answer cards.
type Question struct {
	Question string `yaml:"question"`
	Answers  []int  `yaml:"answers"`
	Correct  int    `yaml:"correct"`
}

// Answer returns the correct value.
func (q Question) Answer() int {
	return q.Answers[q.Correct]
}

// IsCorrect reports whether the card at index i is the right one.
func (q Question) IsCorrect(i int) bool {
	return i == q.Correct
}

// NewBridgeQuestions generates n addition or subtraction questions whose
// operands and results stay within 0..MaxSum. Each has three distinct
// answers, one of them correct, in random order.
func NewBridgeQuestions(rng *rand.Rand, n int) []Question {
	out := make([]Question, 0, n)
	for range n {
		var text string
		var answer int
		if stage.IntBetween(rng, 0, 1) == 0 {
			a := stage.IntBetween(rng, 1, MaxSum-1)
			b := stage.IntBetween(rng, 1, MaxSum-a)
			text, answer = fmt.Sprintf("%d + %d = ?", a, b), a+b
		} else {
			a := stage.IntBetween(rng, 2, MaxSum)
			b := stage.IntBetween(rng, 1, a-1)
			text, answer = fmt.Sprintf("%d - %d = ?", a, b), a-b
		}
		answers := []int{answer}
		for len(answers) < 3 {
			d := answer + stage.Pick(rng, []int{-2, -1, 1, 2})
			if d < 0 || d > MaxSum || slices.Contains(answers, d) {
				continue
			}
			answers = append(answers, d)
		}
		stage.Shuffle(rng, answers)
		out = append(out, Question{
			Question: text,
			Answers:  answers,
			Correct:  slices.Index(answers, answer),
		})
	}
	return out
}
