// Package rules auto-categorizes imported transactions by payee matching.
package rules

import (
	"strings"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

// Engine evaluates categorization rules in creation order; the first
// matching rule wins.
type Engine struct {
	rules []model.Rule
}

// NewEngine creates an Engine from a slice of rules.
func NewEngine(rules []model.Rule) *Engine {
	return &Engine{rules: rules}
}

// Load reads all rules from the store and returns an Engine.
func Load(st *store.Store) (*Engine, error) {
	rs, err := st.ListRules()
	if err != nil {
		return nil, err
	}
	return NewEngine(rs), nil
}

// Categorize returns the category for a payee, matching each rule's
// pattern as a case-insensitive substring.
func (e *Engine) Categorize(payee string) (categoryID string, ok bool) {
	lower := strings.ToLower(payee)
	for _, r := range e.rules {
		if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r.CategoryID, true
		}
	}
	return "", false
}
