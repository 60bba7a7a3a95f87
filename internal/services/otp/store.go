// internal/services/otp/store.go
package otp

import (
	"context"
	"time"

	"internship-recommender/internal/models"
)

type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeExpired
	OutcomeTooManyAttempts
	OutcomeVerified
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeExpired:
		return "expired"
	case OutcomeTooManyAttempts:
		return "exhausted"
	case OutcomeVerified:
		return "verified"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// VerifyResult carries the outcome of one verification attempt. Remaining is
// only meaningful for OutcomeInvalid.
type VerifyResult struct {
	Outcome   Outcome
	Remaining int
}

// Store holds at most one record per email. Verify must run its
// check-then-mutate sequence atomically per email.
type Store interface {
	Put(ctx context.Context, email string, record models.OTPRecord) error
	Verify(ctx context.Context, email, code string, now time.Time, maxAttempts int) (VerifyResult, error)
	// Purge drops records that expired more than retention ago.
	Purge(ctx context.Context, now time.Time, retention time.Duration) (int, error)
}

// evaluate applies one verification attempt to a record. It reports whether
// the record must be deleted; otherwise the caller stores the returned record.
func evaluate(record models.OTPRecord, code string, now time.Time, maxAttempts int) (VerifyResult, models.OTPRecord, bool) {
	if record.Expired(now) {
		return VerifyResult{Outcome: OutcomeExpired}, record, true
	}
	if record.Attempts >= maxAttempts {
		return VerifyResult{Outcome: OutcomeTooManyAttempts}, record, true
	}
	if record.Code == code {
		return VerifyResult{Outcome: OutcomeVerified}, record, true
	}
	record.Attempts++
	return VerifyResult{Outcome: OutcomeInvalid, Remaining: maxAttempts - record.Attempts}, record, false
}
