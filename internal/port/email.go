package port

import "context"

// ParseFailureNotice describes a price list that exhausted its parse attempts.
type ParseFailureNotice struct {
	Provider  string
	FileName  string
	Attempts  int
	LastError string
}

// EmailSender defines the contract for operational notifications.
type EmailSender interface {
	SendParseFailure(ctx context.Context, toEmail string, notice ParseFailureNotice) error
}
