package admission

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/eventease-dev/eventease/internal/lifecycle"
)

var (
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventFull is returned when the confirmed count has reached the
	// event's attendee limit.
	ErrEventFull = errors.New("event is full")

	// ErrDuplicateRegistration is returned when the email already holds a
	// registration for the event.
	ErrDuplicateRegistration = errors.New("already registered for this event")

	// ErrContention is returned when the admission scope could not be
	// acquired within the bounded wait. Callers may retry.
	ErrContention = errors.New("registration is busy, please retry")
)

// NotRegistrableError reports that the event is not open to registration,
// carrying the lifecycle sub-reason.
type NotRegistrableError struct {
	Reason lifecycle.NotRegistrableReason
}

func (e *NotRegistrableError) Error() string {
	return string(e.Reason)
}

// ValidationError carries every offending registrant field, not just the
// first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
