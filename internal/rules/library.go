package rules

import (
	"fmt"
	"sync"
)

// entry pairs a rule with its runtime configuration.
type entry struct {
	rule    Rule
	weight  float64
	enabled bool
}

// Library holds the rule set together with each rule's weight and
// enabled flag. Safe for concurrent use.
type Library struct {
	mu      sync.Mutex
	entries []*entry
}

// NewLibrary returns a library loaded with the default rules.
func NewLibrary() *Library {
	lib := &Library{}
	lib.Add(NewThreeColourRule(), 1.5)
	lib.Add(&LightTopDarkBottomRule{}, 1.2)
	lib.Add(&ForbiddenComboRule{}, 1.8)
	lib.Add(&StyleCoordinationRule{}, 1.5)
	lib.Add(&ContextMatchRule{}, 1.3)
	return lib
}

// Add registers a rule with the given aggregation weight. Added rules
// start enabled.
func (l *Library) Add(rule Rule, weight float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &entry{rule: rule, weight: weight, enabled: true})
}

// Remove deletes the named rule from the library.
func (l *Library) Remove(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, en := range l.entries {
		if en.rule.Name() == name {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown rule: %s", name)
}

// Rule returns the named rule.
func (l *Library) Rule(name string) (Rule, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if en := l.find(name); en != nil {
		return en.rule, true
	}
	return nil, false
}

// Enable turns the named rule back on.
func (l *Library) Enable(name string) error {
	return l.setEnabled(name, true)
}

// Disable stops the named rule from being evaluated without removing it.
func (l *Library) Disable(name string) error {
	return l.setEnabled(name, false)
}

func (l *Library) setEnabled(name string, enabled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.find(name)
	if en == nil {
		return fmt.Errorf("unknown rule: %s", name)
	}
	en.enabled = enabled
	return nil
}

// SetWeight changes the aggregation weight of the named rule.
func (l *Library) SetWeight(name string, weight float64) error {
	if weight < 0 {
		return fmt.Errorf("rule weight must not be negative, got %v", weight)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.find(name)
	if en == nil {
		return fmt.Errorf("unknown rule: %s", name)
	}
	en.weight = weight
	return nil
}

// find locates an entry by rule name. Callers must hold the mutex.
func (l *Library) find(name string) *entry {
	for _, en := range l.entries {
		if en.rule.Name() == name {
			return en
		}
	}
	return nil
}

// enabledEntries returns a snapshot of the enabled rules in
// registration order.
func (l *Library) enabledEntries() []entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	snapshot := make([]entry, 0, len(l.entries))
	for _, en := range l.entries {
		if en.enabled {
			snapshot = append(snapshot, *en)
		}
	}
	return snapshot
}

// RuleInfo describes a registered rule for listing.
type RuleInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Enabled     bool    `json:"enabled"`
}

// List returns information about every registered rule in registration
// order.
func (l *Library) List() []RuleInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	infos := make([]RuleInfo, 0, len(l.entries))
	for _, en := range l.entries {
		infos = append(infos, RuleInfo{
			Name:        en.rule.Name(),
			Description: en.rule.Description(),
			Weight:      en.weight,
			Enabled:     en.enabled,
		})
	}
	return infos
}
