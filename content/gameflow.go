package content

import (
	"fmt"
	"log"
	"slices"
)

// ScreenInfo is the display metadata of one playable screen.
type ScreenInfo struct {
	ID          int    `yaml:"id"`
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	NameEN      string `yaml:"name_en"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       uint32 `yaml:"color"`
	Reward      string `yaml:"reward"`
}

// GameFlowConfig controls screen ordering and debug switches.
type GameFlowConfig struct {
	ScreenOrder       []string               `yaml:"screen_order"`
	IndependentLevels bool                   `yaml:"independent_levels"`
	SkipToScreen      string                 `yaml:"skip_to_screen"`
	ShowLevelSelect   bool                   `yaml:"show_level_select"`
	DebugMode         bool                   `yaml:"debug_mode"`
	Screens           map[string]*ScreenInfo `yaml:"screens"`
}

// Validate reports unknown screen keys.
func (g *GameFlowConfig) Validate() error {
	if len(g.ScreenOrder) == 0 {
		return fmt.Errorf("%w: empty screen order", ErrInvalidConfig)
	}
	for _, key := range g.ScreenOrder {
		if g.Screens[key] == nil {
			return fmt.Errorf("%w: screen order names unknown screen %q", ErrInvalidConfig, key)
		}
	}
	if g.SkipToScreen != "" && g.Screens[g.SkipToScreen] == nil {
		return fmt.Errorf("%w: skip to unknown screen %q", ErrInvalidConfig, g.SkipToScreen)
	}
	return nil
}

// FirstScreen returns the screen to play first: SkipToScreen when set,
// otherwise the head of ScreenOrder.
func (g *GameFlowConfig) FirstScreen() *ScreenInfo {
	if g.SkipToScreen != "" {
		return g.Screens[g.SkipToScreen]
	}
	if len(g.ScreenOrder) == 0 {
		return nil
	}
	return g.Screens[g.ScreenOrder[0]]
}

// NextScreen returns the screen after current, or nil at the end or for an
// unknown key.
func (g *GameFlowConfig) NextScreen(current string) *ScreenInfo {
	i := slices.Index(g.ScreenOrder, current)
	if i == -1 || i >= len(g.ScreenOrder)-1 {
		return nil
	}
	return g.Screens[g.ScreenOrder[i+1]]
}

// PreviousScreen returns the screen before current, or nil at the start.
func (g *GameFlowConfig) PreviousScreen(current string) *ScreenInfo {
	i := slices.Index(g.ScreenOrder, current)
	if i <= 0 {
		return nil
	}
	return g.Screens[g.ScreenOrder[i-1]]
}

// HasNextScreen reports whether a screen follows current.
func (g *GameFlowConfig) HasNextScreen(current string) bool {
	return g.NextScreen(current) != nil
}

// ScreenInfo returns the metadata for key, or nil.
func (g *GameFlowConfig) ScreenInfo(key string) *ScreenInfo {
	return g.Screens[key]
}

// AllScreens returns the known screens in play order.
func (g *GameFlowConfig) AllScreens() []*ScreenInfo {
	out := make([]*ScreenInfo, 0, len(g.ScreenOrder))
	for _, key := range g.ScreenOrder {
		if info := g.Screens[key]; info != nil {
			out = append(out, info)
		}
	}
	return out
}

// ScreenPosition returns the 1-based position of key, or 0 when unknown.
func (g *GameFlowConfig) ScreenPosition(key string) int {
	return slices.Index(g.ScreenOrder, key) + 1
}

// TotalScreens returns the number of screens in the order.
func (g *GameFlowConfig) TotalScreens() int {
	return len(g.ScreenOrder)
}

// LogConfig prints the flow settings.
func (g *GameFlowConfig) LogConfig(l *log.Logger) {
	l.Printf("game flow: order=%v skip=%q level_select=%t debug=%t",
		g.ScreenOrder, g.SkipToScreen, g.ShowLevelSelect, g.DebugMode)
	if first := g.FirstScreen(); first != nil {
		l.Printf("game flow: first screen %s (%s)", first.Key, first.NameEN)
	}
}
