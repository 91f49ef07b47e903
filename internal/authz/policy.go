package authz

import (
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

// Identity is the resolved caller of a request. The zero value is the
// anonymous identity.
type Identity struct {
	ID   uint
	Role string
}

var Anonymous = Identity{}

func (i Identity) IsAnonymous() bool {
	return i.ID == 0
}

// Elevated reports whether the identity has cross-event management rights.
func (i Identity) Elevated() bool {
	return i.Role == types.RoleAdmin || i.Role == types.RoleStaff
}

type Action string

const (
	ActionCreateEvent     Action = "event.create"
	ActionReadEvent       Action = "event.read"
	ActionUpdateEvent     Action = "event.update"
	ActionDeleteEvent     Action = "event.delete"
	ActionListOwnEvents   Action = "event.list"
	ActionExportAttendees Action = "event.export"
)

type DenyReason string

const (
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonForbidden       DenyReason = "forbidden"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Authorize is the single decision table for management actions. resource is
// the target event; nil for actions without a target (create, list).
//
// STAFF may read, update and export any event but may not delete one it does
// not own. That asymmetry is intentional: staff assist management but cannot
// destroy another owner's event or its registrant data.
func Authorize(identity Identity, action Action, resource *models.Event) Decision {
	if identity.IsAnonymous() {
		return deny(ReasonUnauthenticated)
	}

	owner := resource != nil && resource.CreatorID == identity.ID

	switch action {
	case ActionCreateEvent, ActionListOwnEvents:
		return allow()
	case ActionReadEvent, ActionUpdateEvent, ActionExportAttendees:
		if identity.Elevated() || owner {
			return allow()
		}
		return deny(ReasonForbidden)
	case ActionDeleteEvent:
		if identity.Role == types.RoleAdmin || owner {
			return allow()
		}
		return deny(ReasonForbidden)
	}

	return deny(ReasonForbidden)
}

// RestrictToOwned reports whether list and aggregate queries for this identity
// must be scoped to rows it created. ADMIN and STAFF see the unscoped set.
func RestrictToOwned(identity Identity) bool {
	return !identity.Elevated()
}
