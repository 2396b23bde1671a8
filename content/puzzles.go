package content

import (
	"math/rand/v2"

	"github.com/phanxgames/bunnyworld/stage"
)

// MirrorCount is the number of mirrors in one Mirror City session.
const MirrorCount = 10

// Location is a point in a puzzle image as fractions of its size.
type Location struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Difference describes what changed between the original and its reflection.
type Difference struct {
	Type       string   `yaml:"type"`
	Element    string   `yaml:"element"`
	Original   string   `yaml:"original"`
	Reflection string   `yaml:"reflection"`
	Hint       string   `yaml:"hint"`
	Location   Location `yaml:"location"`
}

// Puzzle is one spot-the-difference mirror.
type Puzzle struct {
	ID          int        `yaml:"id"`
	Category    string     `yaml:"category"`
	Scene       string     `yaml:"scene"`
	Description string     `yaml:"description"`
	Difficulty  int        `yaml:"difficulty"`
	Difference  Difference `yaml:"difference"`
}

// SelectMirrorPuzzles picks MirrorCount puzzles for a session: 2 easy,
// 3 medium and 2 hard, then 3 more from what is left. The pick is shuffled
// and reordered so neighbours differ in category where possible.
func SelectMirrorPuzzles(rng *rand.Rand, all []Puzzle) []Puzzle {
	var byLevel [3][]Puzzle
	for _, p := range all {
		if p.Difficulty >= 1 && p.Difficulty <= 3 {
			byLevel[p.Difficulty-1] = append(byLevel[p.Difficulty-1], p)
		}
	}
	quota := [3]int{2, 3, 2}

	selected := make([]Puzzle, 0, MirrorCount)
	var rest []Puzzle
	for i, level := range byLevel {
		stage.Shuffle(rng, level)
		n := min(quota[i], len(level))
		selected = append(selected, level[:n]...)
		rest = append(rest, level[n:]...)
	}
	stage.Shuffle(rng, rest)
	fill := min(MirrorCount-len(selected), len(rest))
	selected = append(selected, rest[:fill]...)

	stage.Shuffle(rng, selected)
	return spreadCategories(selected)
}

// spreadCategories greedily reorders puzzles so that each one differs in
// category from the previous when any remaining puzzle allows it.
func spreadCategories(puzzles []Puzzle) []Puzzle {
	if len(puzzles) == 0 {
		return puzzles
	}
	out := make([]Puzzle, 0, len(puzzles))
	out = append(out, puzzles[0])
	remaining := append([]Puzzle(nil), puzzles[1:]...)
	for len(remaining) > 0 {
		last := out[len(out)-1].Category
		idx := 0
		for i, p := range remaining {
			if p.Category != last {
				idx = i
				break
			}
		}
		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

// Hit reports whether a click at (x, y), relative to a w x h puzzle panel,
// lands within radius of the difference.
func (p Puzzle) Hit(x, y, w, h, radius float64) bool {
	dx := p.Difference.Location.X * w
	dy := p.Difference.Location.Y * h
	return stage.Distance(x, y, dx, dy) <= radius
}
