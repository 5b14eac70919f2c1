package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// CreateCategory inserts a new category and logs the change. Uniqueness is
// case-insensitive via the normalized name key.
func (s *Store) CreateCategory(name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := &model.Category{ID: uuid.NewString(), Name: name, NameKey: model.CategoryKey(name)}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cat).Error; err != nil {
			return err
		}
		return appendChange(tx, model.EntityCategory, cat.ID, model.OpCreate, cat)
	})
	if err != nil {
		return nil, fmt.Errorf("creating category %q: %w", name, err)
	}
	return cat, nil
}

// FindCategoryByName returns the category matching name case-insensitively,
// or nil.
func (s *Store) FindCategoryByName(name string) (*model.Category, error) {
	var cat model.Category
	err := s.db.Where("name_key = ?", model.CategoryKey(name)).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding category %q: %w", name, err)
	}
	return &cat, nil
}

// ListCategories returns all categories in lexical order.
func (s *Store) ListCategories() ([]model.Category, error) {
	var cats []model.Category
	if err := s.db.Order("name_key").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return cats, nil
}

// DeleteCategory removes a category. Transactions that referenced it keep
// their rows with the category reference cleared (set-null policy); rules
// targeting it are removed.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Transaction{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("clearing category references: %w", err)
		}
		if err := tx.Delete(&model.Rule{}, "category_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting category rules: %w", err)
		}
		if err := tx.Delete(&model.Category{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}
		return appendChange(tx, model.EntityCategory, id, model.OpDelete, nil)
	})
}
