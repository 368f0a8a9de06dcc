package planner

import (
	"errors"
	"fmt"
)

var errMissingHost = errors.New("base URL needs a scheme and host")

type Kind int

const (
	KindInvalidURL Kind = iota + 1
	KindTransport
	KindBadStatus
	KindDecodeFailed
	KindRequestFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindTransport:
		return "transport"
	case KindBadStatus:
		return "bad_status"
	case KindDecodeFailed:
		return "decode_failed"
	case KindRequestFailed:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation. StatusCode is set only for
// KindBadStatus.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return "Invalid API URL."
	case KindBadStatus:
		return fmt.Sprintf("Server returned HTTP %d.", e.StatusCode)
	case KindDecodeFailed:
		return fmt.Sprintf("Failed to decode server response: %v", e.Err)
	case KindTransport:
		return fmt.Sprintf("Network error: %v", e.Err)
	default:
		return "Request failed."
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a planner error of kind k.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}
