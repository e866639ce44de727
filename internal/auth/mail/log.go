package mail

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

// LogSender writes messages to the request logger instead of delivering
// them. It keeps the last messages sent so development tooling and tests can
// inspect them.
type LogSender struct {
	mu   sync.Mutex
	sent []Message
}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("mail not delivered (log driver)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text),
	)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of every message passed to Send.
func (s *LogSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
