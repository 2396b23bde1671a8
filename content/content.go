// Package content holds the game's static data: screen flow, the world map,
// mirror puzzles, counting questions and owl dialogue. Tables are embedded
// YAML; a few settings can be overridden from the environment.
package content

import (
	"embed"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrInvalidConfig is returned when content tables are inconsistent.
var ErrInvalidConfig = errors.New("invalid content config")

// Window is the logical game resolution.
type Window struct {
	Width  int
	Height int
}

// Content is everything the screens read at startup.
type Content struct {
	Flow      *GameFlowConfig
	Window    Window
	WorldMap  WorldMap
	Puzzles   []Puzzle
	Questions []Question
	Dialogue  Dialogue
}

// envOverrides holds raw env values. Pointer fields stay nil when unset so
// the YAML value wins.
type envOverrides struct {
	SkipToScreen    *string `env:"BUNNYWORLD_SKIP_TO_SCREEN"`
	Debug           *bool   `env:"BUNNYWORLD_DEBUG"`
	ShowLevelSelect *bool   `env:"BUNNYWORLD_SHOW_LEVEL_SELECT"`
	Width           int     `env:"BUNNYWORLD_WIDTH"  envDefault:"1280"`
	Height          int     `env:"BUNNYWORLD_HEIGHT" envDefault:"720"`
}

// Load reads the embedded tables and applies overrides from the process
// environment.
func Load() (*Content, error) {
	return load(env.Options{})
}

// LoadWithEnv is Load with an explicit environment, for tests and tools.
func LoadWithEnv(environ map[string]string) (*Content, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Content, error) {
	c := &Content{Flow: &GameFlowConfig{}}
	if err := decode("data/gameflow.yaml", c.Flow); err != nil {
		return nil, err
	}
	if err := decode("data/cities.yaml", &c.WorldMap); err != nil {
		return nil, err
	}

	var puzzles struct {
		Puzzles []Puzzle `yaml:"puzzles"`
	}
	if err := decode("data/puzzles.yaml", &puzzles); err != nil {
		return nil, err
	}
	c.Puzzles = puzzles.Puzzles

	var questions struct {
		Questions []Question `yaml:"questions"`
	}
	if err := decode("data/questions.yaml", &questions); err != nil {
		return nil, err
	}
	c.Questions = questions.Questions

	if err := decode("data/dialogue.yaml", &c.Dialogue); err != nil {
		return nil, err
	}

	var raw envOverrides
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if raw.SkipToScreen != nil {
		c.Flow.SkipToScreen = *raw.SkipToScreen
	}
	if raw.Debug != nil {
		c.Flow.DebugMode = *raw.Debug
	}
	if raw.ShowLevelSelect != nil {
		c.Flow.ShowLevelSelect = *raw.ShowLevelSelect
	}
	c.Window = Window{Width: raw.Width, Height: raw.Height}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Validate checks cross-table references.
func (c *Content) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if err := c.Flow.Validate(); err != nil {
		return err
	}
	for _, city := range c.WorldMap.Cities {
		if city.Screen != "" && c.Flow.ScreenInfo(city.Screen) == nil {
			return fmt.Errorf("%w: city %d links unknown screen %q", ErrInvalidConfig, city.ID, city.Screen)
		}
	}
	if len(c.Puzzles) < MirrorCount {
		return fmt.Errorf("%w: %d puzzles, need at least %d", ErrInvalidConfig, len(c.Puzzles), MirrorCount)
	}
	for _, p := range c.Puzzles {
		if p.Difficulty < 1 || p.Difficulty > 3 {
			return fmt.Errorf("%w: puzzle %d difficulty %d", ErrInvalidConfig, p.ID, p.Difficulty)
		}
	}
	for i, q := range c.Questions {
		if q.Correct < 0 || q.Correct >= len(q.Answers) {
			return fmt.Errorf("%w: question %d correct index %d", ErrInvalidConfig, i, q.Correct)
		}
	}
	return nil
}
