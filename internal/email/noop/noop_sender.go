package noop

import (
	"context"
	"log"

	"gstbill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, msg port.EmailMessage) error {
	log.Printf("[NOOP EMAIL] To %s <%s>: %s (%d bytes)", msg.ToName, msg.ToAddress, msg.Subject, len(msg.TextBody))
	return nil
}
