package payment

import (
	"fmt"
	"strings"
)

// ErrorKind buckets processor failures for the client's retry affordance.
// Classification is substring-based because the processor reports most of
// these only as message text, not structured codes.
type ErrorKind string

const (
	ErrorKindSession ErrorKind = "session" // third-party cookies blocked, expired checkout session
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindPayment ErrorKind = "payment" // declined, insufficient funds, rejected order
	ErrorKindInit    ErrorKind = "initialization"
	ErrorKindUnknown ErrorKind = "unknown"
)

// MaxRetries caps how often the client should re-run the create→capture sequence
const MaxRetries = 3

func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "cookie") || strings.Contains(msg, "session"):
		return ErrorKindSession
	case strings.Contains(msg, "network") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "eof"):
		return ErrorKindNetwork
	case strings.Contains(msg, "declined") || strings.Contains(msg, "insufficient") ||
		strings.Contains(msg, "instrument") || strings.Contains(msg, "payer") ||
		strings.Contains(msg, "capture"):
		return ErrorKindPayment
	case strings.Contains(msg, "initialize") || strings.Contains(msg, "script") ||
		strings.Contains(msg, "access token") || strings.Contains(msg, "client id"):
		return ErrorKindInit
	default:
		return ErrorKindUnknown
	}
}

// CaptureNotRecordedError means the processor captured the money but the
// reservation write failed afterwards. The capture id must reach the guest so
// support can reconcile manually; this must never be collapsed into a generic
// error.
type CaptureNotRecordedError struct {
	CaptureID string
	Err       error
}

func (e *CaptureNotRecordedError) Error() string {
	return fmt.Sprintf("payment captured (transaction %s) but not recorded: %v", e.CaptureID, e.Err)
}

func (e *CaptureNotRecordedError) Unwrap() error {
	return e.Err
}
