// Package mail renders and delivers transactional email.
package mail

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("mail: sender not configured")

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message. Implementations must honour ctx cancellation
// where the transport allows it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
