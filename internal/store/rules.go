package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// CreateRule inserts an auto-categorization rule and logs the change.
func (s *Store) CreateRule(pattern, categoryID string) (*model.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule := &model.Rule{ID: uuid.NewString(), Pattern: pattern, CategoryID: categoryID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return err
		}
		return appendChange(tx, model.EntityRule, rule.ID, model.OpCreate, rule)
	})
	if err != nil {
		return nil, fmt.Errorf("creating rule %q: %w", pattern, err)
	}
	return rule, nil
}

// ListRules returns all rules in creation order.
func (s *Store) ListRules() ([]model.Rule, error) {
	var rules []model.Rule
	if err := s.db.Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	return rules, nil
}

// DeleteRule removes a rule and logs the change.
func (s *Store) DeleteRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Rule{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting rule: %w", err)
		}
		return appendChange(tx, model.EntityRule, id, model.OpDelete, nil)
	})
}
