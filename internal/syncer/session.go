package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is the sync session's lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateSyncing     State = "syncing"
	StateReconciling State = "reconciling"
	StateError       State = "error"
)

// ErrUnacknowledged is returned when a sync is requested while a
// permanent error is still waiting for the user to acknowledge it.
var ErrUnacknowledged = errors.New("permanent sync error awaiting acknowledgment")

// Session drives the sync state machine: Idle → Syncing → Reconciling →
// Idle, with Error reachable from Syncing and Reconciling. Transient
// failures retry with exponential backoff up to MaxAttempts; permanent
// failures stop until acknowledged. Idle is the resting state — there is
// no terminal state while the process runs, and teardown does not flush:
// pending changes persist across restarts.
type Session struct {
	client      *Client
	log         zerolog.Logger
	maxAttempts int
	backoff     time.Duration

	mu        sync.Mutex
	state     State
	lastErr   error
	permanent bool
	stop      chan struct{}
	done      chan struct{}
}

// NewSession creates a session in Idle. maxAttempts bounds how many times
// one sync cycle is tried before the failure surfaces; backoff is the
// initial retry delay, doubled per attempt.
func NewSession(client *Client, log zerolog.Logger, maxAttempts int, backoff time.Duration) *Session {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Session{
		client:      client,
		log:         log,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		state:       StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the error that put the session into Error, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Acknowledge clears an Error state back to Idle. Permanent errors
// require this before another sync may run.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateError {
		s.state = StateIdle
		s.lastErr = nil
		s.permanent = false
	}
}

// Sync runs one full sync cycle, retrying transient failures with
// exponential backoff. After exactly maxAttempts transient failures the
// session lands in Error and the failure is returned. A permanent
// failure goes to Error immediately. Cancellation between steps leaves
// acknowledged records acknowledged and the rest pending, safe to
// resume.
func (s *Session) Sync(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateError && s.permanent {
		s.mu.Unlock()
		return ErrUnacknowledged
	}
	s.mu.Unlock()

	for attempt := 1; ; attempt++ {
		err := s.runOnce(ctx)
		if err == nil {
			s.setState(StateIdle, nil, false)
			return nil
		}
		if ctx.Err() != nil {
			// Cancelled between steps: not a failure, resume later.
			s.setState(StateIdle, nil, false)
			return err
		}
		if IsPermanent(err) {
			s.log.Error().Err(err).Msg("sync failed permanently; acknowledgment required")
			s.setState(StateError, err, true)
			return err
		}
		if attempt >= s.maxAttempts {
			s.log.Error().Err(err).Int("attempts", attempt).Msg("sync retries exhausted")
			s.setState(StateError, err, false)
			return err
		}

		delay := s.backoff << (attempt - 1)
		s.log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", delay).Msg("transient sync failure, retrying")
		select {
		case <-ctx.Done():
			s.setState(StateIdle, nil, false)
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// runOnce executes push, fetch, then reconcile, advancing the state
// machine between steps.
func (s *Session) runOnce(ctx context.Context) error {
	s.setState(StateSyncing, nil, false)
	if _, err := s.client.PushPending(ctx); err != nil {
		return fmt.Errorf("pushing changes: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	pull, err := s.client.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("pulling changes: %w", err)
	}

	s.setState(StateReconciling, nil, false)
	res, err := s.client.Apply(pull)
	if err != nil {
		return fmt.Errorf("reconciling changes: %w", err)
	}
	s.log.Info().
		Int("applied", res.Applied).
		Int("skipped", res.Skipped).
		Int("conflicted", len(res.Conflicted)).
		Msg("sync cycle complete")
	return nil
}

// Start begins periodic syncing on interval until Stop or ctx
// cancellation. Stopping only halts the timer; nothing needs flushing.
func (s *Session) Start(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if err := s.Sync(ctx); err != nil && !errors.Is(err, ErrUnacknowledged) {
					s.log.Error().Err(err).Msg("periodic sync failed")
				}
			}
		}
	}()
}

// Stop halts the periodic timer and waits for any in-flight cycle's loop
// to exit.
func (s *Session) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Session) setState(state State, err error, permanent bool) {
	s.mu.Lock()
	s.state = state
	s.lastErr = err
	s.permanent = permanent
	s.mu.Unlock()
}
