package mail

import (
	"context"
	"errors"
)

// FailureKind partitions delivery errors for logging: authentication
// failures, SMTP protocol failures, and everything else (transport,
// connection, unknown).
type FailureKind string

const (
	FailureAuth     FailureKind = "authentication"
	FailureProtocol FailureKind = "protocol"
	FailureOther    FailureKind = "transport"
)

// SendError wraps a delivery failure with its classification.
type SendError struct {
	Kind FailureKind
	Err  error
}

func (e *SendError) Error() string {
	return string(e.Kind) + " failure: " + e.Err.Error()
}

func (e *SendError) Unwrap() error { return e.Err }

// Classify returns the failure kind of a delivery error, FailureOther when
// the error carries no classification.
func Classify(err error) FailureKind {
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return sendErr.Kind
	}
	return FailureOther
}

// Message is a multipart reminder mail: plain-text fallback plus HTML body,
// addressed to a single recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Client submits messages to a mail transport. Implementations never retry;
// callers record per-recipient outcomes and continue the batch.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
