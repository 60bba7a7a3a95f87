// internal/models/otp.go
package models

import "time"

// OTPRecord is the single active passcode for one email address.
type OTPRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether now is strictly past the expiry instant.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
