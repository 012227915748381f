// Package colour provides colour extraction, classification and scoring
// for outfit analysis.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Palette represents a collection of colours extracted from an image.
// Weights, when present, hold the fraction of sampled pixels belonging
// to each colour and sum to 1.0.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and no weights.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a new Palette with per-colour weights.
// The weights slice must be the same length as colors.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Triple returns the colour as an [r, g, b] slice, the wire form used
// in analysis responses.
func (rgb RGB) Triple() []int {
	return []int{int(rgb.R), int(rgb.G), int(rgb.B)}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		hexColors[i] = rgb.Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// Percentages returns the share of sampled pixels per colour in the
// range [0, 100]. Palettes without weights report equal shares.
func (p *Palette) Percentages() []float64 {
	percentages := make([]float64, len(p.Colors))
	if len(p.Weights) == len(p.Colors) && len(p.Weights) > 0 {
		for i, w := range p.Weights {
			percentages[i] = w * 100
		}
		return percentages
	}
	if len(p.Colors) > 0 {
		share := 100.0 / float64(len(p.Colors))
		for i := range percentages {
			percentages[i] = share
		}
	}
	return percentages
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	percentages := p.Percentages()
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex:        rgb.Hex(),
			RGB:        rgb,
			Percentage: percentages[i],
		}
	}

	paletteJSON := PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	percentages := p.Percentages()
	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		result += fmt.Sprintf("  %2d: %s (%s) %.2f%%\n", i+1, rgb.Hex(), rgb.String(), percentages[i])
	}
	return result
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (color.Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return nil, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, color.Color) bool) {
	return func(yield func(int, color.Color) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
