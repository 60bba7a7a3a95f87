// internal/models/notification.go
package models

// NotificationKind names the message templates the dispatcher can render.
type NotificationKind string

const (
	NotificationOTP                     NotificationKind = "otp"
	NotificationApplicationConfirmation NotificationKind = "application_confirmation"
)

// Email is a rendered message ready for a transport.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}
