package content

import (
	"math"

	"github.com/phanxgames/bunnyworld/stage"
)

// City is a location on the world map. Cities with a Screen open that
// screen when their marker is clicked.
type City struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Description string  `yaml:"description"`
	Theme       string  `yaml:"theme"`
	Screen      string  `yaml:"screen"`
	Visible     bool    `yaml:"visible"`
}

// WorldMap holds city positions authored on a Width x Height canvas.
type WorldMap struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Cities []City  `yaml:"cities"`
}

// VisibleCities returns the cities that get a marker, in table order.
func (m WorldMap) VisibleCities() []City {
	var out []City
	for _, c := range m.Cities {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// Marker is a placed city marker in screen coordinates.
type Marker struct {
	City  City
	X, Y  float64
	Scale float64
}

const (
	markerEdge        = 50.0
	markerMinDistance = 50.0
	markerAttempts    = 20
)

// MarkerScale returns the factor mapping the authored map onto a w x h
// screen while keeping the aspect ratio.
func (m WorldMap) MarkerScale(w, h float64) float64 {
	mw, mh := m.Width, m.Height
	if mw <= 0 || mh <= 0 {
		mw, mh = 1920, 1080
	}
	return math.Min(w/mw, h/mh)
}

// PlaceMarkers scales city positions to a w x h screen and nudges each one
// off earlier markers and out of avoid. Candidates spiral around the scaled
// position in 45 degree steps; when every attempt fails the clamped scaled
// position is used.
func (m WorldMap) PlaceMarkers(cities []City, w, h float64, avoid stage.Rect) []Marker {
	scale := m.MarkerScale(w, h)
	minDist := markerMinDistance * scale
	step := minDist * 0.5

	clampX := func(x float64) float64 { return stage.Clamp(x, markerEdge, w-markerEdge) }
	clampY := func(y float64) float64 { return stage.Clamp(y, markerEdge, h-markerEdge) }

	placed := make([]Marker, 0, len(cities))
	free := func(x, y float64) bool {
		if avoid.Contains(x, y) {
			return false
		}
		for _, p := range placed {
			if stage.Distance(x, y, p.X, p.Y) < minDist {
				return false
			}
		}
		return true
	}

	for _, c := range cities {
		bx, by := c.X*scale, c.Y*scale
		x, y := clampX(bx), clampY(by)
		found := false
		for attempt := 0; attempt < markerAttempts; attempt++ {
			// The first candidate is the unclamped base position.
			cx, cy := x, y
			if attempt == 0 {
				cx, cy = bx, by
			}
			if free(cx, cy) {
				x, y = clampX(cx), clampY(cy)
				found = true
				break
			}
			angle := stage.DegToRad(float64(attempt * 45))
			radius := step * float64(1+attempt/8)
			x = clampX(bx + math.Cos(angle)*radius)
			y = clampY(by + math.Sin(angle)*radius)
		}
		if !found {
			x, y = clampX(bx), clampY(by)
		}
		placed = append(placed, Marker{City: c, X: x, Y: y, Scale: scale})
	}
	return placed
}

// MenuButtonArea is the region around the menu's central buttons that
// markers keep out of.
func MenuButtonArea(w, h float64) stage.Rect {
	return stage.Rect{X: w/2 - 200, Y: h/2 - 100, Width: 400, Height: 300}
}
