package rules

import (
	"fmt"
	"math"
)

// Suggestion ties an improvement hint to the rule that raised it.
type Suggestion struct {
	Rule       string   `json:"rule"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
}

// Summary counts rule outcomes across an evaluation.
type Summary struct {
	TotalRules  int `json:"total_rules"`
	PassedRules int `json:"passed_rules"`
	FailedRules int `json:"failed_rules"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// Report is the aggregated outcome of evaluating an outfit. Score is
// the weighted average of the individual rule scores; Passed is false
// only when a rule raised an error severity.
type Report struct {
	Score       float64      `json:"score"`
	Passed      bool         `json:"passed"`
	Results     []Result     `json:"results"`
	Suggestions []Suggestion `json:"suggestions"`
	Summary     Summary      `json:"summary"`
}

// Evaluator applies a rule library to outfits.
type Evaluator struct {
	library *Library
}

// NewEvaluator creates an evaluator backed by the given library. A nil
// library gets the default rule set.
func NewEvaluator(library *Library) *Evaluator {
	if library == nil {
		library = NewLibrary()
	}
	return &Evaluator{library: library}
}

// Library exposes the evaluator's rule library for configuration.
func (e *Evaluator) Library() *Library {
	return e.library
}

// Evaluate runs every enabled rule against the outfit and aggregates
// the weighted scores. Evaluation stops at the first rule that fails
// to run.
func (e *Evaluator) Evaluate(outfit Outfit) (Report, error) {
	// Top and bottom colours default to the overall colour list.
	if len(outfit.TopColors) == 0 {
		outfit.TopColors = outfit.Colors
	}
	if len(outfit.BottomColors) == 0 {
		outfit.BottomColors = outfit.Colors
	}

	entries := e.library.enabledEntries()

	report := Report{
		Results:     make([]Result, 0, len(entries)),
		Suggestions: make([]Suggestion, 0),
	}

	totalWeighted := 0.0
	totalWeight := 0.0
	for _, en := range entries {
		result, err := en.rule.Evaluate(&outfit)
		if err != nil {
			return Report{}, fmt.Errorf("rule %s: %w", en.rule.Name(), err)
		}
		result.RuleName = en.rule.Name()
		result.RuleDescription = en.rule.Description()
		result.Weight = en.weight
		report.Results = append(report.Results, result)

		totalWeighted += result.Score * en.weight
		totalWeight += en.weight
	}

	if totalWeight > 0 {
		report.Score = math.Round(totalWeighted/totalWeight*100) / 100
	}

	for _, result := range report.Results {
		if result.Suggestion != "" {
			report.Suggestions = append(report.Suggestions, Suggestion{
				Rule:       result.RuleName,
				Suggestion: result.Suggestion,
				Severity:   result.Severity,
			})
		}
		switch result.Severity {
		case SeverityError:
			report.Summary.Errors++
		case SeverityWarning:
			report.Summary.Warnings++
		}
		if result.Passed {
			report.Summary.PassedRules++
		} else {
			report.Summary.FailedRules++
		}
	}
	report.Summary.TotalRules = len(report.Results)
	report.Passed = report.Summary.Errors == 0

	return report, nil
}

// EvaluateOutfit evaluates an outfit against the default rule set.
func EvaluateOutfit(outfit Outfit) (Report, error) {
	return NewEvaluator(nil).Evaluate(outfit)
}
