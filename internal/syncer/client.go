// Package syncer keeps the local entity store convergent with the remote
// portfolio service: it pushes the pending change log, pulls remote
// changes, and reconciles both through the resolver under a
// last-writer-wins conflict policy.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
	"github.com/eric-minassian/ericfinance-sub001/internal/resolver"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

// Client exchanges change records with the remote service. It never holds
// the store lock across a network round trip: pending records are
// snapshotted first, the remote is called, then outcomes are written
// back per record.
type Client struct {
	store    *store.Store
	resolver *resolver.Resolver
	remote   Remote
	log      zerolog.Logger
}

// NewClient creates a sync client.
func NewClient(st *store.Store, res *resolver.Resolver, remote Remote, log zerolog.Logger) *Client {
	return &Client{store: st, resolver: res, remote: remote, log: log}
}

// PushResult summarizes one push.
type PushResult struct {
	Pushed       int
	Acknowledged int
	Conflicted   int
}

// PushPending sends all unacknowledged change records as one batch. A
// batch that is a pure retry (every record already stamped with the same
// batch id) reuses that id so the remote can recognize the replay;
// otherwise a fresh id is assigned and stamped before the network call.
// Outcomes are applied per record: acknowledged records are archived,
// conflicted ones flagged, and anything the remote did not mention stays
// pending for the next push.
func (c *Client) PushPending(ctx context.Context) (*PushResult, error) {
	recs, err := c.store.PendingChanges()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return &PushResult{}, nil
	}

	batchID := retryBatchID(recs)
	if batchID == "" {
		batchID = uuid.NewString()
	}
	ids := make([]string, len(recs))
	uploads := make([]ChangeUpload, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
		uploads[i] = ChangeUpload{
			ID:         rec.ID,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			Op:         rec.Op,
			Payload:    json.RawMessage(rec.Payload),
			Timestamp:  rec.CreatedAt,
		}
	}
	if err := c.store.MarkSent(ids, batchID); err != nil {
		return nil, err
	}

	c.log.Debug().Str("batch_id", batchID).Int("changes", len(recs)).Msg("pushing pending changes")
	resp, err := c.remote.Push(ctx, PushRequest{BatchID: batchID, Changes: uploads})
	if err != nil {
		return nil, err
	}

	if err := c.store.MarkAcknowledged(resp.Acknowledged); err != nil {
		return nil, err
	}
	conflicted := make([]string, len(resp.Conflicted))
	for i, cf := range resp.Conflicted {
		conflicted[i] = cf.ChangeID
	}
	if err := c.store.MarkConflicted(conflicted); err != nil {
		return nil, err
	}

	c.log.Info().
		Str("batch_id", batchID).
		Int("acknowledged", len(resp.Acknowledged)).
		Int("conflicted", len(conflicted)).
		Msg("push complete")
	return &PushResult{
		Pushed:       len(recs),
		Acknowledged: len(resp.Acknowledged),
		Conflicted:   len(conflicted),
	}, nil
}

// retryBatchID returns the shared batch id when every record was already
// sent under the same one, meaning this push is a replay.
func retryBatchID(recs []model.ChangeRecord) string {
	id := recs[0].BatchID
	if id == "" {
		return ""
	}
	for _, rec := range recs {
		if rec.BatchID != id {
			return ""
		}
	}
	return id
}

// Fetch retrieves remote changes after the stored cursor. It does not
// apply them; that is the reconciling step.
func (c *Client) Fetch(ctx context.Context) (*PullResponse, error) {
	since, err := c.store.SyncCursor()
	if err != nil {
		return nil, err
	}
	resp, err := c.remote.Pull(ctx, since)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int64("since", since).Int("changes", len(resp.Changes)).Msg("fetched remote changes")
	return resp, nil
}

// ApplyResult summarizes one reconcile pass. Conflicted holds the local
// change records that lost last-writer-wins; they are surfaced, never
// silently dropped.
type ApplyResult struct {
	Applied    int
	Skipped    int
	Conflicted []model.ChangeRecord
}

// Apply reconciles fetched changes into the store in remote revision
// order. When a remote change targets an entity with a local pending
// change, the later server timestamp wins: a newer remote change lands
// and the local record is marked conflicted; an older one is skipped so
// the local change can win on the next push.
func (c *Client) Apply(pull *PullResponse) (*ApplyResult, error) {
	changes := make([]RemoteChange, len(pull.Changes))
	copy(changes, pull.Changes)
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Revision < changes[j].Revision })

	result := &ApplyResult{}
	for _, ch := range changes {
		pending, err := c.store.PendingChangeForEntity(ch.EntityType, ch.EntityID)
		if err != nil {
			return nil, err
		}
		if pending != nil {
			if !ch.ServerTime.After(pending.CreatedAt) {
				result.Skipped++
				continue
			}
			if err := c.store.MarkConflicted([]string{pending.ID}); err != nil {
				return nil, err
			}
			pending.Status = model.ChangeConflicted
			result.Conflicted = append(result.Conflicted, *pending)
			c.log.Warn().
				Str("entity_type", string(ch.EntityType)).
				Str("entity_id", ch.EntityID).
				Msg("remote change won conflict; local change retained for review")
		}

		if err := c.resolver.ApplyRemote(ch.EntityType, ch.Op, ch.EntityID, ch.Payload); err != nil {
			if errors.Is(err, resolver.ErrMalformedPayload) {
				return nil, Permanent(err)
			}
			return nil, fmt.Errorf("applying remote change rev %d: %w", ch.Revision, err)
		}
		result.Applied++
	}

	if err := c.store.SetSyncCursor(pull.NewRevision); err != nil {
		return nil, err
	}
	return result, nil
}
