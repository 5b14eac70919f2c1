package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// appendChange writes one change record inside the caller's transaction,
// assigning the next local revision. Every local mutation goes through
// here; remote applies do not (they would echo back to the service).
func appendChange(tx *gorm.DB, et model.EntityType, entityID string, op model.ChangeOp, payload any) error {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling change payload: %w", err)
		}
	}

	var maxRev int64
	if err := tx.Model(&model.ChangeRecord{}).
		Select("COALESCE(MAX(revision), 0)").Scan(&maxRev).Error; err != nil {
		return fmt.Errorf("reading change revision: %w", err)
	}

	rec := model.ChangeRecord{
		ID:         uuid.NewString(),
		EntityType: et,
		EntityID:   entityID,
		Op:         op,
		Payload:    string(data),
		Revision:   maxRev + 1,
		Status:     model.ChangePending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(&rec).Error; err != nil {
		return fmt.Errorf("appending change record: %w", err)
	}
	return nil
}

// PendingChanges returns all unacknowledged (pending or sent) change
// records in revision order.
func (s *Store) PendingChanges() ([]model.ChangeRecord, error) {
	var recs []model.ChangeRecord
	err := s.db.
		Where("status IN ?", []model.ChangeStatus{model.ChangePending, model.ChangeSent}).
		Order("revision").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending changes: %w", err)
	}
	return recs, nil
}

// ConflictedChanges returns change records the remote rejected, oldest
// first, for user review.
func (s *Store) ConflictedChanges() ([]model.ChangeRecord, error) {
	var recs []model.ChangeRecord
	err := s.db.Where("status = ?", model.ChangeConflicted).Order("revision").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing conflicted changes: %w", err)
	}
	return recs, nil
}

// PendingChangeForEntity returns the newest unacknowledged change for one
// entity, or nil if the entity has no local edits in flight.
func (s *Store) PendingChangeForEntity(et model.EntityType, entityID string) (*model.ChangeRecord, error) {
	var rec model.ChangeRecord
	err := s.db.
		Where("entity_type = ? AND entity_id = ? AND status IN ?",
			et, entityID, []model.ChangeStatus{model.ChangePending, model.ChangeSent}).
		Order("revision DESC").
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding pending change: %w", err)
	}
	return &rec, nil
}

// MarkSent stamps records with the batch id of the push that carried them.
// A later retry of the same records reuses this batch id, which is what
// makes replayed pushes idempotent on the remote side.
func (s *Store) MarkSent(ids []string, batchID string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Model(&model.ChangeRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": model.ChangeSent, "batch_id": batchID}).Error
	if err != nil {
		return fmt.Errorf("marking changes sent: %w", err)
	}
	return nil
}

// MarkAcknowledged finalizes records the remote accepted. Acknowledged
// records are archived in place and never mutated again.
func (s *Store) MarkAcknowledged(ids []string) error {
	return s.setChangeStatus(ids, model.ChangeAcknowledged)
}

// MarkConflicted flags records the remote rejected; they stay visible to
// the user instead of being dropped.
func (s *Store) MarkConflicted(ids []string) error {
	return s.setChangeStatus(ids, model.ChangeConflicted)
}

// DiscardChange removes a conflicted change the user has decided to
// abandon. Only conflicted records may be discarded.
func (s *Store) DiscardChange(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.Where("id = ? AND status = ?", id, model.ChangeConflicted).
		Delete(&model.ChangeRecord{})
	if res.Error != nil {
		return fmt.Errorf("discarding change: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("change %s is not conflicted", id)
	}
	return nil
}

func (s *Store) setChangeStatus(ids []string, status model.ChangeStatus) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Model(&model.ChangeRecord{}).
		Where("id IN ?", ids).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("updating change status: %w", err)
	}
	return nil
}
