package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// Settings mutations deliberately bypass the change log: the market-data
// key is a device-local secret and must never appear in change payloads.

// Setting returns the singleton settings row, creating it on first use.
func (s *Store) Setting() (*model.Setting, error) {
	var set model.Setting
	err := s.db.First(&set, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Setting{ID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return &set, nil
}

// SetMarketDataKey stores the market-data API key.
func (s *Store) SetMarketDataKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := model.Setting{ID: 1, MarketDataKey: key}
	if err := s.db.Save(&set).Error; err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// SyncCursor returns the last remote revision the store has applied.
func (s *Store) SyncCursor() (int64, error) {
	var st model.SyncState
	err := s.db.First(&st, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading sync cursor: %w", err)
	}
	return st.RemoteRevision, nil
}

// SetSyncCursor advances the remote revision cursor.
func (s *Store) SetSyncCursor(rev int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st := model.SyncState{ID: 1, RemoteRevision: rev, LastSyncAt: &now}
	if err := s.db.Save(&st).Error; err != nil {
		return fmt.Errorf("saving sync cursor: %w", err)
	}
	return nil
}
