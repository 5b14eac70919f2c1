package model

// Rule auto-categorizes imported transactions: when Pattern is a
// case-insensitive substring of the payee, CategoryID is assigned.
type Rule struct {
	ID         string `gorm:"primaryKey"`
	Pattern    string `gorm:"not null"`
	CategoryID string `gorm:"not null"`

	Category *Category `gorm:"constraint:OnDelete:CASCADE"`
}
