// Package lifecycle models event status transitions and the predicates that
// gate public visibility and registration. All functions are pure; who may
// request a transition is an authorization concern, decided elsewhere.
package lifecycle

import (
	"os"
	"strings"
	"time"

	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

// Terminal reports whether a status admits no further transition.
func Terminal(status string) bool {
	return status == types.EventCancelled || status == types.EventCompleted
}

// CanTransition reports whether an event may move between two statuses.
// CANCELLED and COMPLETED are terminal; everything else is caller's choice.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return !Terminal(from)
}

type NotRegistrableReason string

const (
	ReasonNotPublic    NotRegistrableReason = "event is not public"
	ReasonNotPublished NotRegistrableReason = "event is not available for RSVP"
	ReasonClosed       NotRegistrableReason = "registration is closed"
)

// Policy holds the configurable parts of registrability.
type Policy struct {
	// CloseAfterStart blocks registration once the event's start date has
	// passed. Off by default: the write path historically admitted past
	// events and only the display layer hid them.
	CloseAfterStart bool
}

func PolicyFromEnv() Policy {
	return Policy{CloseAfterStart: envBool("RSVP_CLOSE_AFTER_START")}
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// IsPubliclyVisible reports whether an event appears on public surfaces.
func IsPubliclyVisible(event *models.Event) bool {
	return event.IsPublic && event.Status == types.EventPublished
}

// Registrable reports whether an event currently accepts registrations.
// When it does not, the reason distinguishes not-public, not-published and
// past-cutoff for error reporting.
func (p Policy) Registrable(event *models.Event, now time.Time) (bool, NotRegistrableReason) {
	if !event.IsPublic {
		return false, ReasonNotPublic
	}
	if event.Status != types.EventPublished {
		return false, ReasonNotPublished
	}
	if p.CloseAfterStart && !now.Before(event.StartDate) {
		return false, ReasonClosed
	}
	return true, ""
}
