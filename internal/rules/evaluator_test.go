package rules

import (
	"reflect"
	"testing"

	"github.com/jmylchreest/garb/internal/colour"
)

func TestEvaluateBalancedOutfit(t *testing.T) {
	// White and black names plus a blue triple, worn as smart casual
	// to work: only the mixed style register costs points.
	outfit := Outfit{
		Colors: []ColourValue{
			FromName(colour.NameWhite),
			FromName(colour.NameBlack),
			FromRGB(colour.RGB{R: 100, G: 150, B: 200}),
		},
		Styles:  Styles{Top: "shirt", Bottom: "casual-pants", Shoes: "leather-shoes"},
		Context: Context{Type: "work"},
	}

	report, err := EvaluateOutfit(outfit)
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	if report.Score != 93.84 {
		t.Errorf("Score = %v, want 93.84", report.Score)
	}
	if !report.Passed {
		t.Error("Passed = false, want true")
	}
	if report.Summary.TotalRules != 5 {
		t.Errorf("TotalRules = %d, want 5", report.Summary.TotalRules)
	}
	if report.Summary.PassedRules != 5 {
		t.Errorf("PassedRules = %d, want 5", report.Summary.PassedRules)
	}
	if report.Summary.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", report.Summary.Warnings)
	}
	if report.Summary.Errors != 0 {
		t.Errorf("Errors = %d, want 0", report.Summary.Errors)
	}
	if len(report.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(report.Suggestions))
	}
	if report.Suggestions[0].Rule != "style-coordination" {
		t.Errorf("Suggestions[0].Rule = %s, want style-coordination", report.Suggestions[0].Rule)
	}
}

func TestEvaluateClashingColours(t *testing.T) {
	outfit := Outfit{
		Colors: []ColourValue{
			FromRGB(colour.RGB{R: 220, G: 20, B: 60}),
			FromRGB(colour.RGB{R: 60, G: 180, B: 75}),
		},
	}

	report, err := EvaluateOutfit(outfit)
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	if report.Score != 87.67 {
		t.Errorf("Score = %v, want 87.67", report.Score)
	}
	if report.Passed {
		t.Error("Passed = true, want false (clash raises an error severity)")
	}
	if report.Summary.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Summary.Errors)
	}
	if report.Summary.FailedRules != 1 {
		t.Errorf("FailedRules = %d, want 1", report.Summary.FailedRules)
	}
}

func TestEvaluateContextMismatch(t *testing.T) {
	outfit := Outfit{
		Colors:  []ColourValue{FromName(colour.NameBlack)},
		Styles:  Styles{Top: "t-shirt", Bottom: "jeans", Shoes: "sneakers"},
		Context: Context{Type: "formal"},
	}

	report, err := EvaluateOutfit(outfit)
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	if report.Score != 92.88 {
		t.Errorf("Score = %v, want 92.88", report.Score)
	}
	// A context mismatch is a warning, not an error, so the outfit
	// still passes overall.
	if !report.Passed {
		t.Error("Passed = false, want true")
	}
	if report.Summary.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", report.Summary.Warnings)
	}
	if report.Summary.FailedRules != 1 {
		t.Errorf("FailedRules = %d, want 1", report.Summary.FailedRules)
	}
}

func TestEvaluateEmptyOutfit(t *testing.T) {
	report, err := EvaluateOutfit(Outfit{})
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	// Every rule skips and scores a clean hundred.
	if report.Score != 100 {
		t.Errorf("Score = %v, want 100", report.Score)
	}
	if !report.Passed {
		t.Error("Passed = false, want true")
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("got %d suggestions, want 0", len(report.Suggestions))
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	outfit := Outfit{
		Colors: []ColourValue{
			FromRGB(colour.RGB{R: 220, G: 20, B: 60}),
			FromName(colour.NameWhite),
		},
		Styles:  Styles{Top: "shirt", Bottom: "jeans"},
		Context: Context{Type: "party"},
	}

	first, err := EvaluateOutfit(outfit)
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}
	second, err := EvaluateOutfit(outfit)
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated evaluation produced different reports")
	}
}

func TestEvaluatorStampsWeights(t *testing.T) {
	report, err := EvaluateOutfit(Outfit{Colors: []ColourValue{FromName(colour.NameRed)}})
	if err != nil {
		t.Fatalf("EvaluateOutfit() error = %v", err)
	}

	want := map[string]float64{
		"three-colour":          1.5,
		"light-top-dark-bottom": 1.2,
		"forbidden-combo":       1.8,
		"style-coordination":    1.5,
		"context-match":         1.3,
	}

	if len(report.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(want))
	}
	for _, result := range report.Results {
		if result.Weight != want[result.RuleName] {
			t.Errorf("rule %s weight = %v, want %v", result.RuleName, result.Weight, want[result.RuleName])
		}
		if result.RuleDescription == "" {
			t.Errorf("rule %s has no description", result.RuleName)
		}
	}
}

func TestLibraryEnableDisable(t *testing.T) {
	library := NewLibrary()
	evaluator := NewEvaluator(library)

	outfit := Outfit{
		Colors: []ColourValue{
			FromRGB(colour.RGB{R: 220, G: 20, B: 60}),
			FromRGB(colour.RGB{R: 60, G: 180, B: 75}),
		},
	}

	if err := library.Disable("forbidden-combo"); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}

	report, err := evaluator.Evaluate(outfit)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if report.Score != 100 {
		t.Errorf("Score with clash rule disabled = %v, want 100", report.Score)
	}
	if report.Summary.TotalRules != 4 {
		t.Errorf("TotalRules = %d, want 4", report.Summary.TotalRules)
	}

	if err := library.Enable("forbidden-combo"); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}

	report, err = evaluator.Evaluate(outfit)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if report.Score != 87.67 {
		t.Errorf("Score after re-enabling = %v, want 87.67", report.Score)
	}
}

func TestLibraryConfiguration(t *testing.T) {
	library := NewLibrary()

	if err := library.SetWeight("forbidden-combo", 2.5); err != nil {
		t.Fatalf("SetWeight() error = %v", err)
	}
	if err := library.SetWeight("no-such-rule", 1.0); err == nil {
		t.Error("SetWeight() on unknown rule expected error, got nil")
	}
	if err := library.SetWeight("three-colour", -1); err == nil {
		t.Error("SetWeight() with negative weight expected error, got nil")
	}
	if err := library.Enable("no-such-rule"); err == nil {
		t.Error("Enable() on unknown rule expected error, got nil")
	}

	infos := library.List()
	if len(infos) != 5 {
		t.Fatalf("List() returned %d rules, want 5", len(infos))
	}
	for _, info := range infos {
		if info.Name == "forbidden-combo" {
			if info.Weight != 2.5 {
				t.Errorf("forbidden-combo weight = %v, want 2.5", info.Weight)
			}
			if !info.Enabled {
				t.Error("forbidden-combo should be enabled")
			}
		}
	}
}

func TestLibraryRemove(t *testing.T) {
	library := NewLibrary()

	if err := library.Remove("context-match"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := library.Rule("context-match"); ok {
		t.Error("Rule() found a removed rule")
	}
	if err := library.Remove("context-match"); err == nil {
		t.Error("Remove() on missing rule expected error, got nil")
	}
	if len(library.List()) != 4 {
		t.Errorf("List() returned %d rules, want 4", len(library.List()))
	}
}
