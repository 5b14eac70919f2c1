package model

import "time"

// ImportRecord groups the rows committed by one CSV import so a whole
// batch stays traceable after the fact.
type ImportRecord struct {
	ID        string `gorm:"primaryKey"`
	Source    string
	CreatedAt time.Time
}
