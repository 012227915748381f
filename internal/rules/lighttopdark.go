package rules

import (
	"fmt"
	"math"
)

// LightTopDarkBottomRule prefers outfits whose top half is at least as
// light as the bottom half.
type LightTopDarkBottomRule struct{}

func (r *LightTopDarkBottomRule) Name() string { return "light-top-dark-bottom" }

func (r *LightTopDarkBottomRule) Description() string {
	return "wear lighter colours on top and darker colours below"
}

// Evaluate compares the average brightness of the top and bottom
// colours. The deduction grows with the brightness gap.
func (r *LightTopDarkBottomRule) Evaluate(outfit *Outfit) (Result, error) {
	if len(outfit.Colors) == 0 {
		return skipped("no colour information provided, colour rule skipped"), nil
	}
	if len(outfit.TopColors) == 0 || len(outfit.BottomColors) == 0 {
		return skipped("top or bottom colours not provided, rule skipped"), nil
	}

	topBrightness := averageBrightness(outfit.TopColors)
	bottomBrightness := averageBrightness(outfit.BottomColors)

	if topBrightness >= bottomBrightness {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  "lighter top over darker bottom",
			Severity: SeverityInfo,
		}, nil
	}

	diff := bottomBrightness - topBrightness
	return Result{
		Passed:     false,
		Score:      math.Max(0, 100-diff/2),
		Message:    fmt.Sprintf("top is darker than bottom (top brightness: %.1f, bottom brightness: %.1f)", topBrightness, bottomBrightness),
		Suggestion: "choose a lighter top or a darker bottom",
		Severity:   SeverityWarning,
	}, nil
}
