package sprites

import (
	"fmt"
	"slices"
	"testing"

	"github.com/phanxgames/bunnyworld/behavior"
	"github.com/phanxgames/bunnyworld/stage"
)

func newScene() *stage.Scene {
	s := stage.NewScene(800, 600)
	s.SetSeed(7)
	return s
}

func checkSheet(t *testing.T, reg Registry, key string, frames, size int) {
	t.Helper()
	sheet, ok := reg.Textures().Get(key)
	if !ok {
		t.Fatalf("sheet %q not registered", key)
	}
	if sheet.FrameCount() != frames {
		t.Errorf("%s FrameCount = %d, want %d", key, sheet.FrameCount(), frames)
	}
	if sheet.FrameW != size || sheet.FrameH != size {
		t.Errorf("%s frame = %dx%d, want %dx%d", key, sheet.FrameW, sheet.FrameH, size, size)
	}
}

func TestPingPong(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{0}},
		{2, []int{0, 1}},
		{4, []int{0, 1, 2, 3, 2, 1}},
	}
	for _, tt := range tests {
		if got := pingPong(tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("pingPong(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestAnimateMissingSheet(t *testing.T) {
	s := newScene()
	if key := animate(s, "ghost", "ghost_sheet", 8, -1, nil); key != "" {
		t.Errorf("animate = %q, want empty", key)
	}
	if s.Anims().Exists("ghost") {
		t.Error("animation registered without a sheet")
	}
}

func TestAnimateReplaces(t *testing.T) {
	s := newScene()
	paint(s, strip{"dot_sheet", 3, 8, 8}, func(g *stage.Graphics, cx, cy, _ float64, _ int) {
		g.FillStyle(stage.ColorWhite, 1)
		g.FillCircle(cx, cy, 2)
	})
	animate(s, "dot", "dot_sheet", 8, -1, nil)
	animate(s, "dot", "dot_sheet", 4, 0, []int{2, 1})
	def, ok := s.Anims().Get("dot")
	if !ok {
		t.Fatal("dot not registered")
	}
	if def.FrameRate != 4 || def.Repeat != 0 || !slices.Equal(def.Frames, []int{2, 1}) {
		t.Errorf("dot = %+v, want the second definition", def)
	}
}

func TestGenerateCreatures(t *testing.T) {
	tests := []struct {
		kind   behavior.Kind
		gen    func(Registry, int) []behavior.CreatureData
		frames int
		size   int
		fps    float64
	}{
		{behavior.Firefly, GenerateFireflies, 8, 32, 8},
		{behavior.Bird, GenerateBirds, 10, 48, 10},
		{behavior.Butterfly, GenerateButterflies, 10, 64, 12},
		{behavior.MagicParticle, GenerateMagicParticles, 6, 24, 8},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := newScene()
			got := tt.gen(s, 3)
			if len(got) != 3 {
				t.Fatalf("len = %d, want 3", len(got))
			}
			for i, d := range got {
				key := fmt.Sprintf("%s_%d", tt.kind, i)
				if d.Kind != tt.kind || d.Key != key {
					t.Errorf("data[%d] = %+v, want kind %v key %s", i, d, tt.kind, key)
				}
				if d.SheetKey != key+"_sheet" || d.AnimKey != key+"_fly" {
					t.Errorf("data[%d] keys = %s, %s", i, d.SheetKey, d.AnimKey)
				}
				checkSheet(t, s, d.SheetKey, tt.frames, tt.size)
				def, ok := s.Anims().Get(d.AnimKey)
				if !ok {
					t.Fatalf("animation %s missing", d.AnimKey)
				}
				if def.FrameRate != tt.fps || def.Repeat != -1 {
					t.Errorf("%s rate %f repeat %d, want %f and -1", d.AnimKey, def.FrameRate, def.Repeat, tt.fps)
				}
			}
		})
	}
}

func TestCreatureAnimationsAreDistinct(t *testing.T) {
	s := newScene()
	data := GenerateFireflies(s, 2)
	a, _ := s.Anims().Get(data[0].AnimKey)
	b, _ := s.Anims().Get(data[1].AnimKey)
	if a == b || a.SheetKey == b.SheetKey {
		t.Error("fireflies share an animation")
	}
}

func TestGenerateBunny(t *testing.T) {
	s := newScene()
	cfg := behavior.Roster[1]
	keys := GenerateBunny(s, cfg)
	if len(keys) != len(BunnyAnims) {
		t.Fatalf("len(keys) = %d, want %d", len(keys), len(BunnyAnims))
	}
	for _, a := range BunnyAnims {
		t.Run(a.Name, func(t *testing.T) {
			checkSheet(t, s, behavior.BunnySheetKey("luna", a.Name), a.Frames, 128)
			def, ok := s.Anims().Get(behavior.BunnyAnimKey("luna", a.Name))
			if !ok {
				t.Fatal("animation missing")
			}
			wantRepeat := 0
			if a.Loop {
				wantRepeat = -1
			}
			if def.Repeat != wantRepeat {
				t.Errorf("Repeat = %d, want %d", def.Repeat, wantRepeat)
			}
			wantFrames := a.Frames
			if a.PingPong {
				wantFrames = 2*a.Frames - 2
			}
			if len(def.Frames) != wantFrames {
				t.Errorf("len(Frames) = %d, want %d", len(def.Frames), wantFrames)
			}
		})
	}
}

func TestBunnyAnimNames(t *testing.T) {
	want := []string{"idle", "runright", "runleft", "jump", "victory", "sleep", "hit", "dance", "talk"}
	var got []string
	for _, a := range BunnyAnims {
		got = append(got, a.Name)
	}
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("BunnyAnims = %v, want %v", got, want)
	}
}

func TestGeneratedBunnyPlays(t *testing.T) {
	s := newScene()
	cfg := behavior.Roster[0]
	GenerateBunny(s, cfg)
	b := behavior.CreateBunny(s, s.Root(), 400, 500, cfg)
	if b.Body().Image == nil {
		t.Fatal("bunny body has no frame")
	}
	b.Execute(behavior.Idle)
	if got := b.Body().CurrentAnimation(); got != behavior.BunnyAnimKey("milo", "idle") {
		t.Errorf("CurrentAnimation = %q, want idle", got)
	}
}

func TestGenerateOwl(t *testing.T) {
	s := newScene()
	keys := GenerateOwl(s)
	if len(keys) != len(behavior.OwlStates) {
		t.Fatalf("len(keys) = %d, want %d", len(keys), len(behavior.OwlStates))
	}
	for _, st := range behavior.OwlStates {
		checkSheet(t, s, behavior.OwlSheetKey(st), framesOf(st), 128)
		if !s.Anims().Exists(behavior.OwlAnimKey(st)) {
			t.Errorf("%s animation missing", st)
		}
	}
}

func framesOf(st behavior.OwlState) int {
	for _, a := range owlAnims {
		if a.state == st {
			return a.frames
		}
	}
	return 0
}

func TestJobs(t *testing.T) {
	roster := behavior.Roster[:3]
	jobs := Jobs(DefaultCounts, roster)
	if len(jobs) != 4+len(roster)+1 {
		t.Fatalf("len(jobs) = %d, want %d", len(jobs), 4+len(roster)+1)
	}
	if jobs[4].Name != "bunny Milo" || jobs[len(jobs)-1].Name != "owl" {
		t.Errorf("job names %q ... %q", jobs[4].Name, jobs[len(jobs)-1].Name)
	}
}

func TestGenerate(t *testing.T) {
	s := newScene()
	counts := Counts{Fireflies: 2, Birds: 1, Butterflies: 3, Particles: 4}
	c := Generate(s, counts, behavior.Roster[:2])
	if len(c.Fireflies) != 2 || len(c.Birds) != 1 || len(c.Butterflies) != 3 || len(c.Particles) != 4 {
		t.Errorf("catalog counts = %d %d %d %d", len(c.Fireflies), len(c.Birds), len(c.Butterflies), len(c.Particles))
	}
	if len(c.Bunnies) != 2 || len(c.OwlAnims) != len(behavior.OwlStates) {
		t.Errorf("bunnies %d owl %d", len(c.Bunnies), len(c.OwlAnims))
	}
}

func TestTake(t *testing.T) {
	list := make([]behavior.CreatureData, 5)
	tests := []struct{ n, want int }{{0, 0}, {3, 3}, {5, 5}, {9, 5}}
	for _, tt := range tests {
		if got := len(Take(list, tt.n)); got != tt.want {
			t.Errorf("len(Take(5, %d)) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
