package store

import (
	"fmt"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// Remote-apply operations: used when reconciling inbound changes from the
// portfolio service. They bypass the change-log hook — logging them would
// echo the remote's own changes straight back to it on the next push.

// SaveRemote upserts an entity received from the remote, overwriting the
// local row's fields.
func (s *Store) SaveRemote(value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Save(value).Error; err != nil {
		return fmt.Errorf("applying remote update: %w", err)
	}
	return nil
}

// DeleteRemote removes an entity the remote deleted. Deleting a row that
// is already gone is a no-op.
func (s *Store) DeleteRemote(et model.EntityType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target any
	switch et {
	case model.EntityAccount:
		target = &model.Account{}
	case model.EntityCategory:
		target = &model.Category{}
	case model.EntitySecurity:
		target = &model.Security{}
	case model.EntityTransaction:
		target = &model.Transaction{}
	case model.EntityRule:
		target = &model.Rule{}
	default:
		return fmt.Errorf("unknown entity type %q", et)
	}
	if err := s.db.Delete(target, "id = ?", id).Error; err != nil {
		return fmt.Errorf("applying remote delete: %w", err)
	}
	return nil
}
