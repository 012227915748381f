package rules

import (
	"fmt"
	"slices"
)

// Dress registers acceptable for each known context type.
var contextStyles = map[string][]string{
	"formal":   {"formal"},
	"business": {"formal"},
	"work":     {"formal", "casual"},
	"casual":   {"casual"},
	"sport":    {"casual"},
	"party":    {"casual", "formal"},
}

// ContextMatchRule checks that the outfit's dress register suits the
// occasion it is worn for.
type ContextMatchRule struct{}

func (r *ContextMatchRule) Name() string { return "context-match" }

func (r *ContextMatchRule) Description() string {
	return "dress to suit the occasion"
}

func (r *ContextMatchRule) Evaluate(outfit *Outfit) (Result, error) {
	if outfit.Context.Type == "" {
		return skipped("no context information provided, context rule skipped"), nil
	}

	recommended, ok := contextStyles[outfit.Context.Type]
	if !ok {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  fmt.Sprintf("context %q has no specific style requirements", outfit.Context.Type),
			Severity: SeverityInfo,
		}, nil
	}

	var currentFormal, currentCasual bool
	for _, s := range outfit.Styles.all() {
		if formalStyles[s] {
			currentFormal = true
		}
		if casualStyles[s] {
			currentCasual = true
		}
	}

	formalOK := slices.Contains(recommended, "formal") && currentFormal
	casualOK := slices.Contains(recommended, "casual") && currentCasual

	if formalOK || casualOK {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  fmt.Sprintf("the outfit suits the %s context", outfit.Context.Type),
			Severity: SeverityInfo,
		}, nil
	}

	if slices.Contains(recommended, "formal") {
		return Result{
			Passed:     false,
			Score:      60,
			Message:    fmt.Sprintf("the %s context calls for formal wear, this outfit is too casual", outfit.Context.Type),
			Suggestion: "choose formal pieces such as a shirt, a jacket and leather shoes",
			Severity:   SeverityWarning,
		}, nil
	}

	return Result{
		Passed:     false,
		Score:      60,
		Message:    fmt.Sprintf("the %s context calls for casual wear, this outfit is too formal", outfit.Context.Type),
		Suggestion: "choose casual pieces such as a t-shirt, jeans and sneakers",
		Severity:   SeverityWarning,
	}, nil
}
