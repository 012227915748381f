package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/garb/internal/colour"
)

// Outfit is the input to rule evaluation. TopColors and BottomColors
// fall back to Colors when not given.
type Outfit struct {
	Colors       []ColourValue `json:"colors,omitempty"`
	TopColors    []ColourValue `json:"top_colors,omitempty"`
	BottomColors []ColourValue `json:"bottom_colors,omitempty"`
	Styles       Styles        `json:"styles,omitempty"`
	Context      Context       `json:"context,omitempty"`
}

// Styles names the garment worn in each outfit slot.
type Styles struct {
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
	Shoes  string `json:"shoes,omitempty"`
}

// all returns the slot values in a fixed order.
func (s Styles) all() []string {
	return []string{s.Top, s.Bottom, s.Shoes}
}

// Context describes the occasion an outfit is worn for.
type Context struct {
	Type string `json:"type,omitempty"`
}

// ColourValue is a single outfit colour, given either as an RGB triple
// or as a colour name. Exactly one of the two forms is set.
type ColourValue struct {
	RGB  *colour.RGB
	Name colour.ColourName
}

// FromRGB wraps an RGB triple as an outfit colour.
func FromRGB(rgb colour.RGB) ColourValue {
	return ColourValue{RGB: &rgb}
}

// FromName wraps a colour name as an outfit colour.
func FromName(name colour.ColourName) ColourValue {
	return ColourValue{Name: name}
}

// ClassifiedName returns the colour's name, classifying RGB triples
// through the colour taxonomy.
func (v ColourValue) ClassifiedName() colour.ColourName {
	if v.RGB != nil {
		return colour.Classify(*v.RGB).Name
	}
	return v.Name
}

// Default per-name brightness used when a colour arrives as a name
// rather than an RGB triple.
var nameBrightness = map[colour.ColourName]float64{
	colour.NameBlack:      0,
	colour.NameDeepBlue:   50,
	colour.NameDeepGreen:  50,
	colour.NameDeepRed:    50,
	colour.NameDeepPurple: 50,
	colour.NameGray:       128,
	colour.NameBrown:      100,
	colour.NameBlue:       150,
	colour.NameGreen:      150,
	colour.NameRed:        150,
	colour.NamePurple:     150,
	colour.NamePaleBlue:   200,
	colour.NamePaleGreen:  200,
	colour.NamePink:       220,
	colour.NamePalePurple: 200,
	colour.NameWhite:      255,
	colour.NamePaleYellow: 240,
	colour.NameYellow:     220,
	colour.NameOrange:     200,
}

// Brightness returns the colour's luminance, computed from the RGB
// value when present and looked up by name otherwise. Unknown names
// read as mid gray.
func (v ColourValue) Brightness() float64 {
	if v.RGB != nil {
		return colour.Brightness(*v.RGB)
	}
	if b, ok := nameBrightness[v.Name]; ok {
		return b
	}
	return 128
}

// String renders the colour for messages and logs.
func (v ColourValue) String() string {
	if v.RGB != nil {
		return v.RGB.String()
	}
	return string(v.Name)
}

// UnmarshalJSON accepts either a [r, g, b] array or a colour name
// string.
func (v *ColourValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var triple []int
		if err := json.Unmarshal(data, &triple); err != nil {
			return fmt.Errorf("invalid colour triple: %w", err)
		}
		if len(triple) != 3 {
			return fmt.Errorf("colour triple must have 3 components, got %d", len(triple))
		}
		for _, c := range triple {
			if c < 0 || c > 255 {
				return fmt.Errorf("colour component %d out of range [0, 255]", c)
			}
		}
		v.RGB = &colour.RGB{R: uint8(triple[0]), G: uint8(triple[1]), B: uint8(triple[2])}
		v.Name = ""
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid colour value: %w", err)
	}
	v.RGB = nil
	v.Name = colour.ColourName(name)
	return nil
}

// MarshalJSON renders the colour in the same form it was given.
func (v ColourValue) MarshalJSON() ([]byte, error) {
	if v.RGB != nil {
		return json.Marshal(v.RGB.Triple())
	}
	return json.Marshal(string(v.Name))
}

// averageBrightness is the mean brightness across a colour list.
func averageBrightness(colors []ColourValue) float64 {
	if len(colors) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range colors {
		sum += c.Brightness()
	}
	return sum / float64(len(colors))
}
