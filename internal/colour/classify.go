package colour

// ColourName identifies one entry of the fixed classification palette.
type ColourName string

// The classification palette. Every classified colour maps to exactly
// one of these names.
const (
	NameRed        ColourName = "red"
	NameDeepRed    ColourName = "deep-red"
	NamePink       ColourName = "pink"
	NameOrange     ColourName = "orange"
	NameYellow     ColourName = "yellow"
	NamePaleYellow ColourName = "pale-yellow"
	NameGreen      ColourName = "green"
	NameDeepGreen  ColourName = "deep-green"
	NamePaleGreen  ColourName = "pale-green"
	NameBlue       ColourName = "blue"
	NameDeepBlue   ColourName = "deep-blue"
	NamePaleBlue   ColourName = "pale-blue"
	NamePurple     ColourName = "purple"
	NameDeepPurple ColourName = "deep-purple"
	NamePalePurple ColourName = "pale-purple"
	NameBrown      ColourName = "brown"
	NameBlack      ColourName = "black"
	NameWhite      ColourName = "white"
	NameGray       ColourName = "gray"
)

// Tone is the coarse temperature category of a colour.
type Tone string

const (
	ToneWarm    Tone = "warm"
	ToneCold    Tone = "cold"
	ToneNeutral Tone = "neutral"
)

// Classification is the name and tone assigned to a single colour.
type Classification struct {
	Name ColourName `json:"name"`
	Tone Tone       `json:"tone"`
}

// Brightness returns the perceptual luminance of a colour in [0, 255]
// using the Rec. 601 luma coefficients.
func Brightness(rgb RGB) float64 {
	return 0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)
}

// IsNeutral reports whether a colour name is one of the neutral
// (black/white/gray) entries.
func IsNeutral(name ColourName) bool {
	return name == NameBlack || name == NameWhite || name == NameGray
}

// Classify maps an RGB colour to its name and tone.
//
// The predicates are evaluated in a fixed order and the first match
// wins. Several tests overlap near their thresholds, so reordering
// them changes the result for borderline colours.
func Classify(rgb RGB) Classification {
	r := float64(rgb.R)
	g := float64(rgb.G)
	b := float64(rgb.B)

	brightness := Brightness(rgb)

	// Low channel spread means an achromatic colour; split purely on
	// brightness.
	spread := max(r, g, b) - min(r, g, b)
	if spread < 30 {
		switch {
		case brightness < 30:
			return Classification{Name: NameBlack, Tone: ToneNeutral}
		case brightness > 225:
			return Classification{Name: NameWhite, Tone: ToneNeutral}
		default:
			return Classification{Name: NameGray, Tone: ToneNeutral}
		}
	}

	total := r + g + b
	if total == 0 {
		return Classification{Name: NameBlack, Tone: ToneNeutral}
	}
	rRatio := r / total
	gRatio := g / total
	bRatio := b / total

	// Brown sits inside the red/yellow region and must be tested first.
	if brightness < 150 && r > 50 && g > 30 && b < min(r, g)*0.7 && r > b && g > b {
		return Classification{Name: NameBrown, Tone: ToneWarm}
	}

	if rRatio > 0.35 && gRatio > 0.3 && r > b && g > b {
		if r > g*1.15 && g > 100 {
			return Classification{Name: NameOrange, Tone: ToneWarm}
		}
		if brightness > 200 {
			return Classification{Name: NamePaleYellow, Tone: ToneWarm}
		}
		return Classification{Name: NameYellow, Tone: ToneWarm}
	}

	if rRatio > 0.4 && r > g && r > b {
		switch {
		case brightness > 200:
			return Classification{Name: NamePink, Tone: ToneWarm}
		case brightness < 80:
			return Classification{Name: NameDeepRed, Tone: ToneWarm}
		default:
			return Classification{Name: NameRed, Tone: ToneWarm}
		}
	}

	if gRatio > 0.35 && g > r && g > b {
		switch {
		case brightness > 200:
			return Classification{Name: NamePaleGreen, Tone: ToneCold}
		case brightness < 100:
			return Classification{Name: NameDeepGreen, Tone: ToneCold}
		default:
			return Classification{Name: NameGreen, Tone: ToneCold}
		}
	}

	if bRatio > 0.4 && b > r && b > g {
		switch {
		case brightness > 200:
			return Classification{Name: NamePaleBlue, Tone: ToneCold}
		case brightness < 100:
			return Classification{Name: NameDeepBlue, Tone: ToneCold}
		default:
			return Classification{Name: NameBlue, Tone: ToneCold}
		}
	}

	if rRatio > 0.3 && bRatio > 0.3 && r > g && b > g {
		switch {
		case brightness > 200:
			return Classification{Name: NamePalePurple, Tone: ToneCold}
		case brightness < 100:
			return Classification{Name: NameDeepPurple, Tone: ToneCold}
		default:
			return Classification{Name: NamePurple, Tone: ToneCold}
		}
	}

	// Fallback: whichever channel dominates decides, ties resolving
	// red before green before blue.
	if r >= g && r >= b {
		return Classification{Name: NameRed, Tone: ToneWarm}
	}
	if g >= b {
		return Classification{Name: NameGreen, Tone: ToneCold}
	}
	return Classification{Name: NameBlue, Tone: ToneCold}
}
