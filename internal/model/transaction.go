package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date format for transactions.
const DateLayout = "2006-01-02"

// Transaction is a single ledger movement. Fingerprint is the dedup key,
// unique per account (the same fingerprint under another account is a
// distinct transaction).
type Transaction struct {
	ID          string `gorm:"primaryKey"`
	AccountID   string `gorm:"not null;uniqueIndex:idx_txn_account_fingerprint"`
	CategoryID  *string
	SecurityID  *string
	ImportID    *string
	Date        time.Time       `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:text;not null"` // negative = expense, positive = income
	Payee       string          `gorm:"not null"`
	Fingerprint string          `gorm:"not null;uniqueIndex:idx_txn_account_fingerprint"`

	Account  *Account  `gorm:"constraint:OnDelete:RESTRICT"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
	Security *Security `gorm:"constraint:OnDelete:SET NULL"`
}
