package rules

// Garment names grouped by the dress register they belong to. Garments
// in neither group do not influence style rules.
var (
	formalStyles = map[string]bool{
		"shirt":         true,
		"jacket":        true,
		"leather-shoes": true,
	}
	casualStyles = map[string]bool{
		"t-shirt":      true,
		"hoodie":       true,
		"jeans":        true,
		"casual-pants": true,
		"sneakers":     true,
	}
)

// styleKind maps a garment name to its register, or "" when unknown.
func styleKind(style string) string {
	switch {
	case formalStyles[style]:
		return "formal"
	case casualStyles[style]:
		return "casual"
	default:
		return ""
	}
}

// StyleCoordinationRule checks that the top, bottom and shoes sit in
// the same dress register.
type StyleCoordinationRule struct{}

func (r *StyleCoordinationRule) Name() string { return "style-coordination" }

func (r *StyleCoordinationRule) Description() string {
	return "keep the top, bottom and shoes in a coordinated style"
}

func (r *StyleCoordinationRule) Evaluate(outfit *Outfit) (Result, error) {
	if outfit.Styles == (Styles{}) {
		return skipped("no style information provided, style rule skipped"), nil
	}

	kinds := make(map[string]bool)
	known := 0
	for _, s := range outfit.Styles.all() {
		if k := styleKind(s); k != "" {
			kinds[k] = true
			known++
		}
	}

	if known == 0 {
		return Result{
			Passed:   true,
			Score:    100,
			Message:  "cannot determine the outfit's style",
			Severity: SeverityInfo,
		}, nil
	}

	switch len(kinds) {
	case 1:
		return Result{
			Passed:   true,
			Score:    100,
			Message:  "styles are coordinated",
			Severity: SeverityInfo,
		}, nil
	case 2:
		return Result{
			Passed:     true,
			Score:      70,
			Message:    "styles partially mixed, still largely coordinated",
			Suggestion: "unify the style for a cleaner look",
			Severity:   SeverityWarning,
		}, nil
	default:
		return Result{
			Passed:     false,
			Score:      40,
			Message:    "styles clash, formal and casual pieces mixed",
			Suggestion: "match formal with formal and casual with casual",
			Severity:   SeverityError,
		}, nil
	}
}
