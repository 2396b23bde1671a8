package screens

import (
	"math"
	"testing"
)

func startForest(t *testing.T) (*Manager, *CountingForest) {
	t.Helper()
	m := newTestManager(t)
	startScreen(t, m, CountingForestKey)
	return m, m.Screen().(*CountingForest)
}

// dropCard drags card i of the current question onto (x, y).
func dropCard(m *Manager, f *CountingForest, i int, x, y float64) {
	c := f.Cards()[i]
	m.Scene().InjectDrag(c.X, c.Y, x, y, 8)
	drain(m)
}

func TestForestLayout(t *testing.T) {
	m, f := startForest(t)
	if f.State() != Asking {
		t.Errorf("State = %s, want asking", f.State())
	}
	if len(f.Questions()) != forestQuestions {
		t.Fatalf("%d questions, want %d", len(f.Questions()), forestQuestions)
	}
	if len(f.Planks()) != len(f.Questions()) {
		t.Errorf("%d planks, want one per question", len(f.Planks()))
	}
	if got := len(f.Cards()); got != len(f.Questions()[0].Answers) {
		t.Errorf("%d cards, want %d", got, len(f.Questions()[0].Answers))
	}
	w, h := m.Size()
	if x, y := f.DropZone(); x != w/2 || math.Abs(y-h*0.7) > 1e-9 {
		t.Errorf("DropZone = (%v, %v), want (%v, %v)", x, y, w/2, h*0.7)
	}
	if f.prompt.TextBlock.Content != "Câu hỏi: "+f.Questions()[0].Question {
		t.Errorf("prompt = %q", f.prompt.TextBlock.Content)
	}
}

func TestForestCorrectCard(t *testing.T) {
	m, f := startForest(t)
	q := f.Questions()[0]
	zx, zy := f.DropZone()

	dropCard(m, f, q.Correct, zx, zy)
	if f.State() != Celebrating {
		t.Fatalf("State = %s after correct drop, want celebrating", f.State())
	}
	if m.HUD().Stars() != 1 {
		t.Errorf("Stars = %d, want 1", m.HUD().Stars())
	}
	if f.Planks()[0].Name != "plank" {
		t.Errorf("plank 0 is %q, want restored", f.Planks()[0].Name)
	}

	advance(m, nextQuestionIn+0.1)
	if f.Question() != 1 || f.State() != Asking {
		t.Errorf("Question = %d state %s, want 1 asking", f.Question(), f.State())
	}
}

func TestForestWrongCard(t *testing.T) {
	m, f := startForest(t)
	q := f.Questions()[0]
	wrong := (q.Correct + 1) % len(q.Answers)
	card := f.Cards()[wrong]
	homeX, homeY := card.X, card.Y
	zx, zy := f.DropZone()

	dropCard(m, f, wrong, zx, zy)
	if f.State() != Asking {
		t.Errorf("State = %s after wrong drop, want asking", f.State())
	}
	if m.HUD().Stars() != 0 {
		t.Errorf("Stars = %d, want 0", m.HUD().Stars())
	}
	advance(m, 1)
	if math.Abs(card.X-homeX) > 0.5 || math.Abs(card.Y-homeY) > 0.5 {
		t.Errorf("card at (%v, %v), want back home (%v, %v)", card.X, card.Y, homeX, homeY)
	}
	if card.ScaleX != 1 {
		t.Errorf("card ScaleX = %v after returning, want 1", card.ScaleX)
	}
}

func TestForestDropOutsideZone(t *testing.T) {
	m, f := startForest(t)
	q := f.Questions()[0]
	card := f.Cards()[q.Correct]
	homeX, homeY := card.X, card.Y

	dropCard(m, f, q.Correct, homeX, homeY-100)
	if f.State() != Asking {
		t.Errorf("State = %s, want asking", f.State())
	}
	advance(m, 0.5)
	if math.Abs(card.X-homeX) > 0.5 || math.Abs(card.Y-homeY) > 0.5 {
		t.Errorf("card at (%v, %v), want home (%v, %v)", card.X, card.Y, homeX, homeY)
	}
}

func TestForestComplete(t *testing.T) {
	m, f := startForest(t)
	zx, zy := f.DropZone()
	for i, q := range f.Questions() {
		if f.Question() != i {
			t.Fatalf("Question = %d, want %d", f.Question(), i)
		}
		dropCard(m, f, q.Correct, zx, zy)
		advance(m, nextQuestionIn+0.1)
	}
	if f.State() != Complete {
		t.Fatalf("State = %s, want complete", f.State())
	}
	if m.HUD().Stars() != forestQuestions {
		t.Errorf("Stars = %d, want %d", m.HUD().Stars(), forestQuestions)
	}
	advance(m, backToMenuIn+0.1)
	if m.Current() != MenuKey || !m.Completed(CountingForestKey) {
		t.Errorf("Current = %q completed %v, want menu after a completed level", m.Current(), m.Completed(CountingForestKey))
	}
}
