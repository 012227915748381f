package rules

import (
	"fmt"
	"math"

	"github.com/jmylchreest/garb/internal/colour"
)

// ThreeColourRule checks that an outfit keeps to a bounded number of
// main colours. Neutral colours (black, white, gray) do not count
// towards the limit.
type ThreeColourRule struct {
	MaxColours int
}

// NewThreeColourRule creates the rule with the conventional limit of
// three main colours.
func NewThreeColourRule() *ThreeColourRule {
	return &ThreeColourRule{MaxColours: 3}
}

func (r *ThreeColourRule) Name() string { return "three-colour" }

func (r *ThreeColourRule) Description() string {
	return fmt.Sprintf("use at most %d main colours across the outfit", r.MaxColours)
}

// Evaluate counts the distinct non-neutral colours and deducts 20
// points for each colour over the limit.
func (r *ThreeColourRule) Evaluate(outfit *Outfit) (Result, error) {
	if len(outfit.Colors) == 0 {
		return skipped("no colour information provided, colour rule skipped"), nil
	}

	seen := make(map[colour.ColourName]bool)
	mainColours := 0
	for _, c := range outfit.Colors {
		name := c.ClassifiedName()
		if colour.IsNeutral(name) || seen[name] {
			continue
		}
		seen[name] = true
		mainColours++
	}

	if mainColours <= r.MaxColours {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  fmt.Sprintf("meets the three colour principle with %d main colours", mainColours),
			Severity: SeverityInfo,
		}, nil
	}

	return Result{
		Passed:     false,
		Score:      math.Max(0, 100-float64(mainColours-r.MaxColours)*20),
		Message:    fmt.Sprintf("breaks the three colour principle with %d main colours (at most %d recommended)", mainColours, r.MaxColours),
		Suggestion: fmt.Sprintf("keep %d main colours and move the rest to neutrals (black, white or gray)", r.MaxColours),
		Severity:   SeverityWarning,
	}, nil
}
