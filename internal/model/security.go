package model

// Security is a tradable instrument identified by its ticker symbol.
type Security struct {
	ID       string `gorm:"primaryKey"`
	Symbol   string `gorm:"uniqueIndex;not null"`
	Name     string
	Currency string
}
