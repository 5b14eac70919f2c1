package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// CreateSecurities bulk-inserts securities in one transaction. The batch is
// atomic: a failure on any row leaves none of them inserted.
func (s *Store) CreateSecurities(secs []model.Security) ([]model.Security, error) {
	if len(secs) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range secs {
			if secs[i].ID == "" {
				secs[i].ID = uuid.NewString()
			}
			if err := tx.Create(&secs[i]).Error; err != nil {
				return err
			}
			if err := appendChange(tx, model.EntitySecurity, secs[i].ID, model.OpCreate, secs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating securities: %w", err)
	}
	return secs, nil
}

// FindSecurityBySymbol returns the security with the exact symbol, or nil.
func (s *Store) FindSecurityBySymbol(symbol string) (*model.Security, error) {
	var sec model.Security
	err := s.db.Where("symbol = ?", symbol).First(&sec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding security %q: %w", symbol, err)
	}
	return &sec, nil
}

// ListSecurities returns all securities ordered by symbol.
func (s *Store) ListSecurities() ([]model.Security, error) {
	var secs []model.Security
	if err := s.db.Order("symbol").Find(&secs).Error; err != nil {
		return nil, fmt.Errorf("listing securities: %w", err)
	}
	return secs, nil
}
