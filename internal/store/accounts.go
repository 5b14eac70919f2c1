package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// ErrAccountInUse is returned when deleting an account that transactions
// still reference. The deletion policy for accounts is reject, not cascade.
var ErrAccountInUse = errors.New("account has transactions")

// CreateAccount inserts a new account and logs the change.
func (s *Store) CreateAccount(name string, typ model.AccountType) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := &model.Account{ID: uuid.NewString(), Name: name, Type: typ}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acct).Error; err != nil {
			return err
		}
		return appendChange(tx, model.EntityAccount, acct.ID, model.OpCreate, acct)
	})
	if err != nil {
		return nil, fmt.Errorf("creating account %q: %w", name, err)
	}
	return acct, nil
}

// GetAccountByName returns the account with the exact name, or nil.
func (s *Store) GetAccountByName(name string) (*model.Account, error) {
	var acct model.Account
	err := s.db.Where("name = ?", name).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding account %q: %w", name, err)
	}
	return &acct, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *Store) ListAccounts() ([]model.Account, error) {
	var accts []model.Account
	if err := s.db.Order("name").Find(&accts).Error; err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accts, nil
}

// DeleteAccount removes an account, rejecting with ErrAccountInUse while
// any transaction references it.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Transaction{}).Where("account_id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("counting account transactions: %w", err)
		}
		if n > 0 {
			return ErrAccountInUse
		}
		if err := tx.Delete(&model.Account{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}
		return appendChange(tx, model.EntityAccount, id, model.OpDelete, nil)
	})
}

// AccountBalance sums all transaction amounts for an account.
func (s *Store) AccountBalance(id string) (decimal.Decimal, error) {
	var txns []model.Transaction
	if err := s.db.Where("account_id = ?", id).Find(&txns).Error; err != nil {
		return decimal.Zero, fmt.Errorf("reading account transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total, nil
}
