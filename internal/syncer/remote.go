package syncer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// ChangeUpload is one local change record as sent to the remote.
type ChangeUpload struct {
	ID         string           `json:"id"`
	EntityType model.EntityType `json:"entityType"`
	EntityID   string           `json:"entityId"`
	Op         model.ChangeOp   `json:"op"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// PushRequest carries one batch of local changes. BatchID is client
// generated and stable across retries; the remote must treat a replayed
// batch id as a no-op and return the original acknowledgments.
type PushRequest struct {
	BatchID string         `json:"batchId"`
	Changes []ChangeUpload `json:"changes"`
}

// RemoteChange is one change as reported by the portfolio service.
// ServerTime is the server-assigned timestamp used for conflict
// resolution.
type RemoteChange struct {
	EntityType model.EntityType `json:"entityType"`
	EntityID   string           `json:"entityId"`
	Op         model.ChangeOp   `json:"op"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
	Revision   int64            `json:"revision"`
	ServerTime time.Time        `json:"serverTime"`
}

// Conflict pairs a rejected local change with the server's value so the
// losing intent stays visible to the user.
type Conflict struct {
	ChangeID     string       `json:"changeId"`
	ServerChange RemoteChange `json:"serverChange"`
}

// PushResponse reports per-record outcomes: acceptance is never
// all-or-nothing across a batch.
type PushResponse struct {
	Acknowledged []string   `json:"acknowledged"`
	Conflicted   []Conflict `json:"conflicted"`
}

// PullResponse returns remote changes after a revision cursor, in
// revision order.
type PullResponse struct {
	Changes     []RemoteChange `json:"newChanges"`
	NewRevision int64          `json:"newRevision"`
}

// Remote is the portfolio service boundary. Implementations classify
// their failures as Transient or Permanent.
type Remote interface {
	Push(ctx context.Context, req PushRequest) (*PushResponse, error)
	Pull(ctx context.Context, sinceRevision int64) (*PullResponse, error)
}
