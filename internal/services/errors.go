package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTransport     = errors.New("transport failure")
	ErrTimeout       = errors.New("timeout")
	ErrNotFound      = errors.New("not found")
	ErrDecode        = errors.New("decode error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRetryable reports whether a failure is worth another attempt. Timeouts and
// generic transport failures are; missing resources, bad payloads and
// configuration problems are not.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDecode),
		errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return false
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransport):
		return true
	default:
		return false
	}
}

// Describe returns a short user-facing label for an error class. The CLI uses
// it to pick a message and a retry hint.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "the catalog service took too long to respond"
	case errors.Is(err, ErrNotFound):
		return "the requested title or list does not exist"
	case errors.Is(err, ErrDecode):
		return "the catalog service returned an unreadable response"
	case errors.Is(err, ErrConfiguration):
		return "configuration problem"
	case errors.Is(err, ErrTransport):
		return "could not reach the catalog service"
	default:
		return "unexpected failure"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
