package rules

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/garb/internal/colour"
)

// ForbiddenComboRule flags colour families that clash when worn
// together, such as red with green or purple with yellow.
type ForbiddenComboRule struct{}

// Clashing family pairs. An outfit wearing a colour from both sides of
// a pair violates the rule.
var forbiddenCombos = [][2][]colour.ColourName{
	{
		{colour.NameRed, colour.NameDeepRed, colour.NamePink},
		{colour.NameGreen, colour.NameDeepGreen, colour.NamePaleGreen},
	},
	{
		{colour.NamePurple, colour.NameDeepPurple, colour.NamePalePurple},
		{colour.NameYellow, colour.NamePaleYellow, colour.NameOrange},
	},
	{
		{colour.NameBlue, colour.NameDeepBlue, colour.NamePaleBlue},
		{colour.NameOrange, colour.NameYellow, colour.NamePaleYellow},
	},
}

func (r *ForbiddenComboRule) Name() string { return "forbidden-combo" }

func (r *ForbiddenComboRule) Description() string {
	return "avoid pairing complementary colours directly, such as red with green or purple with yellow"
}

// Evaluate classifies every colour and reports any clashing family
// pair found in the outfit.
func (r *ForbiddenComboRule) Evaluate(outfit *Outfit) (Result, error) {
	if len(outfit.Colors) == 0 {
		return skipped("no colour information provided, colour rule skipped"), nil
	}

	present := make(map[colour.ColourName]bool, len(outfit.Colors))
	for _, c := range outfit.Colors {
		present[c.ClassifiedName()] = true
	}

	var violations []string
	for _, combo := range forbiddenCombos {
		if anyPresent(present, combo[0]) && anyPresent(present, combo[1]) {
			violations = append(violations, fmt.Sprintf("%s with %s", joinNames(combo[0]), joinNames(combo[1])))
		}
	}

	if len(violations) == 0 {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  "no clashing colour combinations found",
			Severity: SeverityInfo,
		}, nil
	}

	return Result{
		Passed:     false,
		Score:      50,
		Message:    fmt.Sprintf("clashing colour combinations found: %s", strings.Join(violations, "; ")),
		Suggestion: "avoid pairing complementary colours directly, bridge them with a neutral (black, white or gray)",
		Severity:   SeverityError,
	}, nil
}

func anyPresent(present map[colour.ColourName]bool, names []colour.ColourName) bool {
	for _, n := range names {
		if present[n] {
			return true
		}
	}
	return false
}

func joinNames(names []colour.ColourName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
