// Package rules evaluates outfits against a configurable set of
// dressing rules covering colour, style and context concerns.
package rules

// Severity grades how strongly a rule outcome should be treated.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Result is the outcome of evaluating a single rule against an outfit.
// RuleName, RuleDescription and Weight are stamped by the evaluator.
type Result struct {
	RuleName        string   `json:"rule_name"`
	RuleDescription string   `json:"rule_description"`
	Passed          bool     `json:"passed"`
	Score           float64  `json:"score"`
	Message         string   `json:"message"`
	Suggestion      string   `json:"suggestion,omitempty"`
	Severity        Severity `json:"severity"`
	Weight          float64  `json:"weight"`
}

// Rule scores one aspect of an outfit. Evaluate returns an error only
// when the rule itself cannot run; advice about the outfit belongs in
// the Result.
type Rule interface {
	Name() string
	Description() string
	Evaluate(outfit *Outfit) (Result, error)
}

// skipped is the passing result used when an outfit lacks the
// information a rule needs.
func skipped(message string) Result {
	return Result{
		Passed:   true,
		Score:    100,
		Message:  message,
		Severity: SeverityInfo,
	}
}
