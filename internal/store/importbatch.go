package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// ImportBatch is the staged output of one CSV import: entities to create
// plus the transactions themselves, already deduplicated and validated.
type ImportBatch struct {
	Source       string
	Account      *model.Account // set when the target account is new
	Categories   []model.Category
	Securities   []model.Security
	Transactions []model.Transaction
}

// CommitImport writes the whole staged batch in one store transaction:
// either everything lands or nothing does. Transactions are inserted in
// file order, and every created entity gets a change record.
func (s *Store) CommitImport(b *ImportBatch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	importID := uuid.NewString()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec := model.ImportRecord{ID: importID, Source: b.Source, CreatedAt: time.Now().UTC()}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating import record: %w", err)
		}

		if b.Account != nil {
			if err := tx.Create(b.Account).Error; err != nil {
				return fmt.Errorf("creating account: %w", err)
			}
			if err := appendChange(tx, model.EntityAccount, b.Account.ID, model.OpCreate, b.Account); err != nil {
				return err
			}
		}
		for i := range b.Categories {
			if err := tx.Create(&b.Categories[i]).Error; err != nil {
				return fmt.Errorf("creating category %q: %w", b.Categories[i].Name, err)
			}
			if err := appendChange(tx, model.EntityCategory, b.Categories[i].ID, model.OpCreate, b.Categories[i]); err != nil {
				return err
			}
		}
		for i := range b.Securities {
			if err := tx.Create(&b.Securities[i]).Error; err != nil {
				return fmt.Errorf("creating security %q: %w", b.Securities[i].Symbol, err)
			}
			if err := appendChange(tx, model.EntitySecurity, b.Securities[i].ID, model.OpCreate, b.Securities[i]); err != nil {
				return err
			}
		}
		for i := range b.Transactions {
			b.Transactions[i].ImportID = &importID
			if err := tx.Create(&b.Transactions[i]).Error; err != nil {
				return fmt.Errorf("creating transaction row %d: %w", i+1, err)
			}
			if err := appendChange(tx, model.EntityTransaction, b.Transactions[i].ID, model.OpCreate, b.Transactions[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return importID, nil
}
