package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// ListTransactions returns an account's transactions in date order.
func (s *Store) ListTransactions(accountID string) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := s.db.Where("account_id = ?", accountID).Order("date, payee").Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return txns, nil
}

// TransactionExists reports whether a transaction with this fingerprint
// already exists under the account. Fingerprints only collide within one
// account; the same fingerprint elsewhere is a different transaction.
func (s *Store) TransactionExists(accountID, fp string) (bool, error) {
	var n int64
	err := s.db.Model(&model.Transaction{}).
		Where("account_id = ? AND fingerprint = ?", accountID, fp).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking fingerprint: %w", err)
	}
	return n > 0, nil
}

// UpdateTransaction saves an edited transaction and logs the update.
func (s *Store) UpdateTransaction(txn *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Account", "Category", "Security").Save(txn).Error; err != nil {
			return fmt.Errorf("saving transaction: %w", err)
		}
		return appendChange(tx, model.EntityTransaction, txn.ID, model.OpUpdate, txn)
	})
}
