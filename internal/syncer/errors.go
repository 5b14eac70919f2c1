package syncer

import "errors"

// TransientError wraps a failure worth retrying: connectivity loss,
// timeouts, remote 5xx. The session retries these with backoff up to the
// configured attempt limit.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient sync error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError wraps a failure retrying cannot fix: rejected
// credentials, schema mismatch, malformed remote payloads. The session
// stops and requires explicit acknowledgment.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "permanent sync error: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Transient wraps err as retryable.
func Transient(err error) error { return &TransientError{Err: err} }

// Permanent wraps err as not retryable.
func Permanent(err error) error { return &PermanentError{Err: err} }

// IsTransient reports whether err is classified transient.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsPermanent reports whether err is classified permanent.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}
