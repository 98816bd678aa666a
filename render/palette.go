package render

import (
	"encoding/json"
	"math/rand"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/lucasb-eyer/go-colorful"
)

// Black is the default wall color.
var Black = colorful.Color{}

// Palette holds the colors a maze is drawn with. Cells blend from Origin at
// the start of carving to Far at the longest walk distance.
type Palette struct {
	Origin colorful.Color
	Far    colorful.Color
	Wall   colorful.Color
}

// RandomPalette picks random blend endpoints and black walls.
func RandomPalette(rng *rand.Rand) Palette {
	return Palette{
		Origin: RandomColor(rng),
		Far:    RandomColor(rng),
		Wall:   Black,
	}
}

// RandomColor returns an opaque color with 8-bit channels drawn from rng.
func RandomColor(rng *rand.Rand) colorful.Color {
	return colorful.Color{
		R: float64(rng.Intn(255)) / 255,
		G: float64(rng.Intn(255)) / 255,
		B: float64(rng.Intn(255)) / 255,
	}
}

// CellColor interpolates between Origin and Far by the normalized walk
// distance. Mazes without a distance scale use Origin.
func (p Palette) CellColor(walk, longest int) colorful.Color {
	t, ok := maze.NormalizedDistance(walk, longest)
	if !ok {
		return p.Origin
	}
	return p.Origin.BlendRgb(p.Far, t).Clamped()
}

type paletteJSON struct {
	Origin string `json:"origin"`
	Far    string `json:"far"`
	Wall   string `json:"wall"`
}

// MarshalJSON encodes the palette as hex colors.
func (p Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(paletteJSON{
		Origin: p.Origin.Hex(),
		Far:    p.Far.Hex(),
		Wall:   p.Wall.Hex(),
	})
}

// UnmarshalJSON decodes hex colors. Missing entries keep their current value.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var raw paletteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, f := range []struct {
		hex string
		dst *colorful.Color
	}{
		{raw.Origin, &p.Origin},
		{raw.Far, &p.Far},
		{raw.Wall, &p.Wall},
	} {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return err
		}
		*f.dst = c
	}
	return nil
}
