package colour

import (
	"fmt"
	"math"
)

// ComboAnalysis carries the intermediate observations made while
// scoring a combination. Fields are omitted when the scorer never
// reached the stage that fills them.
type ComboAnalysis struct {
	ColorCount     int          `json:"color_count,omitempty"`
	ColorTypes     []ColourName `json:"color_types,omitempty"`
	Tones          []Tone       `json:"tones,omitempty"`
	ContrastScores []float64    `json:"contrast_scores,omitempty"`
}

// ComboReport is the result of scoring a colour combination.
type ComboReport struct {
	Score       float64       `json:"score"`
	Suggestions []string      `json:"suggestions"`
	Analysis    ComboAnalysis `json:"analysis"`
}

// Complementary colour families. A combination containing a colour
// from both sides of a pair reads as a complementary scheme.
var complementaryFamilies = [][2][]ColourName{
	{{NameRed, NameDeepRed, NamePink}, {NameGreen, NameDeepGreen, NamePaleGreen}},
	{{NameBlue, NameDeepBlue, NamePaleBlue}, {NameOrange, NameYellow, NamePaleYellow}},
	{{NameYellow, NamePaleYellow}, {NamePurple, NameDeepPurple, NamePalePurple}},
}

// ScoreCombo rates how well a set of colours works together as an
// outfit, starting from 100 and deducting for crowded palettes,
// unbridged warm/cold mixes and poor contrast. The score is clamped
// to [0, 100].
func ScoreCombo(colors []RGB) ComboReport {
	if len(colors) == 0 {
		return ComboReport{
			Score:       0,
			Suggestions: []string{"provide at least one colour to evaluate"},
		}
	}
	if len(colors) == 1 {
		return ComboReport{
			Score:       100,
			Suggestions: []string{"single colour outfits look clean and elegant"},
			Analysis:    ComboAnalysis{ColorCount: 1},
		}
	}

	score := 100.0
	suggestions := make([]string, 0, 4)
	analysis := ComboAnalysis{ColorCount: len(colors)}

	if len(colors) > 3 {
		score -= 20
		suggestions = append(suggestions, fmt.Sprintf("too many colours (%d), keep to at most 3 main colours", len(colors)))
	} else if len(colors) == 3 {
		suggestions = append(suggestions, "follows the three colour rule, well coordinated")
	}

	var warm, cold, neutral int
	for _, c := range colors {
		cls := Classify(c)
		analysis.ColorTypes = append(analysis.ColorTypes, cls.Name)
		analysis.Tones = append(analysis.Tones, cls.Tone)
		switch cls.Tone {
		case ToneWarm:
			warm++
		case ToneCold:
			cold++
		case ToneNeutral:
			neutral++
		}
	}

	if warm > 0 && cold > 0 {
		if neutral == 0 {
			score -= 15
			suggestions = append(suggestions, "mixing warm and cold colours works better with a neutral (black, white or gray) to bridge them")
		} else {
			suggestions = append(suggestions, "warm and cold colours balanced, the neutral bridges them naturally")
		}
	}

	minContrast := math.Inf(1)
	maxContrast := 0.0
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			contrast := Distance(colors[i], colors[j])
			analysis.ContrastScores = append(analysis.ContrastScores, math.Round(contrast*100)/100)
			minContrast = math.Min(minContrast, contrast)
			maxContrast = math.Max(maxContrast, contrast)
		}
	}

	if minContrast < 50 {
		score -= 20
		suggestions = append(suggestions, "some colours are very close together, add contrast")
	} else if minContrast < 100 {
		score -= 10
		suggestions = append(suggestions, "colour contrast is on the low side, a little more separation adds depth")
	}
	if maxContrast > 400 {
		score -= 10
		suggestions = append(suggestions, "colour contrast is very strong and may look harsh")
	}

	present := make(map[ColourName]bool, len(analysis.ColorTypes))
	for _, name := range analysis.ColorTypes {
		present[name] = true
	}
	hasComplementary := false
	for _, pair := range complementaryFamilies {
		if containsAny(present, pair[0]) && containsAny(present, pair[1]) {
			hasComplementary = true
			break
		}
	}
	if hasComplementary && neutral == 0 {
		score -= 15
		suggestions = append(suggestions, "complementary colours benefit from a neutral to balance them")
	} else if hasComplementary {
		suggestions = append(suggestions, "bold complementary pairing, balanced well by the neutral")
	}

	if neutral == len(colors) {
		suggestions = append(suggestions, "an all neutral palette, classic and safe")
	} else if neutral > 0 {
		suggestions = append(suggestions, "neutrals paired with colour, balanced and easy on the eye")
	}

	score = math.Max(0, math.Min(100, score))
	if score >= 80 && len(suggestions) == 0 {
		suggestions = append(suggestions, "the colours work well together")
	}

	return ComboReport{
		Score:       math.Round(score*10) / 10,
		Suggestions: suggestions,
		Analysis:    analysis,
	}
}

func containsAny(present map[ColourName]bool, names []ColourName) bool {
	for _, n := range names {
		if present[n] {
			return true
		}
	}
	return false
}
