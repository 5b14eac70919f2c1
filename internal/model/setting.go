package model

import "time"

// Setting is the singleton settings row. MarketDataKey is an opaque
// secret: it is never logged and never copied into change payloads.
type Setting struct {
	ID            int `gorm:"primaryKey"`
	MarketDataKey string
}

// SyncState is the singleton sync cursor: the last remote revision the
// local store has fully applied.
type SyncState struct {
	ID             int `gorm:"primaryKey"`
	RemoteRevision int64
	LastSyncAt     *time.Time
}
