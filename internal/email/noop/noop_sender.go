package noop

import (
	"context"
	"log"

	"beanvault/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notices to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendParseFailure(_ context.Context, toEmail string, notice port.ParseFailureNotice) error {
	log.Printf("[NOOP EMAIL] Parse failure notice for %s: provider=%s file=%s attempts=%d error=%s",
		toEmail, notice.Provider, notice.FileName, notice.Attempts, notice.LastError)
	return nil
}
