package model

import "strings"

// Category labels transactions. Names are unique case-insensitively:
// NameKey holds the normalized form and carries the uniqueness constraint.
type Category struct {
	ID      string `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	NameKey string `gorm:"uniqueIndex;not null"`
}

// CategoryKey normalizes a category name for case-insensitive matching.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
