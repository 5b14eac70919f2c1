package model

// AccountType classifies accounts.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeCash       AccountType = "cash"
)

// Account is a bank or brokerage account that transactions belong to.
// Names are unique; deletion is rejected while transactions reference it.
type Account struct {
	ID   string      `gorm:"primaryKey"`
	Name string      `gorm:"uniqueIndex;not null"`
	Type AccountType `gorm:"not null;default:checking"`
}
