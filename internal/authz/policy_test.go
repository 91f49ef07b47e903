package authz

import (
	"testing"

	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

const ownerID = 7

func ownedEvent() *models.Event {
	event := &models.Event{CreatorID: ownerID}
	return event
}

func TestAuthorizeMatrix(t *testing.T) {
	actions := []Action{
		ActionCreateEvent,
		ActionReadEvent,
		ActionUpdateEvent,
		ActionDeleteEvent,
		ActionListOwnEvents,
		ActionExportAttendees,
	}

	// want[role][action] = {allowed as owner, allowed as non-owner}
	want := map[string]map[Action][2]bool{
		types.RoleAdmin: {
			ActionCreateEvent:     {true, true},
			ActionReadEvent:       {true, true},
			ActionUpdateEvent:     {true, true},
			ActionDeleteEvent:     {true, true},
			ActionListOwnEvents:   {true, true},
			ActionExportAttendees: {true, true},
		},
		types.RoleStaff: {
			ActionCreateEvent:     {true, true},
			ActionReadEvent:       {true, true},
			ActionUpdateEvent:     {true, true},
			ActionDeleteEvent:     {true, false}, // staff cannot delete another owner's event
			ActionListOwnEvents:   {true, true},
			ActionExportAttendees: {true, true},
		},
		types.RoleEventOwner: {
			ActionCreateEvent:     {true, true},
			ActionReadEvent:       {true, false},
			ActionUpdateEvent:     {true, false},
			ActionDeleteEvent:     {true, false},
			ActionListOwnEvents:   {true, true},
			ActionExportAttendees: {true, false},
		},
	}

	for role, expectations := range want {
		for _, action := range actions {
			expected := expectations[action]

			asOwner := Authorize(Identity{ID: ownerID, Role: role}, action, ownedEvent())

			if asOwner.Allowed != expected[0] {
				t.Errorf("%s %s as owner: got allowed=%v, want %v", role, action, asOwner.Allowed, expected[0])
			}

			asOther := Authorize(Identity{ID: ownerID + 1, Role: role}, action, ownedEvent())

			if asOther.Allowed != expected[1] {
				t.Errorf("%s %s as non-owner: got allowed=%v, want %v", role, action, asOther.Allowed, expected[1])
			}
		}
	}
}

func TestAuthorizeAnonymous(t *testing.T) {
	actions := []Action{
		ActionCreateEvent,
		ActionReadEvent,
		ActionUpdateEvent,
		ActionDeleteEvent,
		ActionListOwnEvents,
		ActionExportAttendees,
	}

	for _, action := range actions {
		decision := Authorize(Anonymous, action, ownedEvent())

		if decision.Allowed {
			t.Errorf("anonymous %s: expected deny", action)
		}

		if decision.Reason != ReasonUnauthenticated {
			t.Errorf("anonymous %s: got reason %q, want %q", action, decision.Reason, ReasonUnauthenticated)
		}
	}
}

func TestAuthorizeDenyReasonForbidden(t *testing.T) {
	identity := Identity{ID: ownerID + 1, Role: types.RoleEventOwner}

	decision := Authorize(identity, ActionUpdateEvent, ownedEvent())

	if decision.Allowed {
		t.Fatal("expected deny")
	}

	if decision.Reason != ReasonForbidden {
		t.Errorf("got reason %q, want %q", decision.Reason, ReasonForbidden)
	}
}

func TestAuthorizeNilResource(t *testing.T) {
	identity := Identity{ID: 3, Role: types.RoleEventOwner}

	if !Authorize(identity, ActionCreateEvent, nil).Allowed {
		t.Error("create with nil resource should be allowed for any authenticated identity")
	}

	if Authorize(identity, ActionUpdateEvent, nil).Allowed {
		t.Error("update with nil resource should be denied for a plain owner")
	}
}

func TestRestrictToOwned(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{types.RoleAdmin, false},
		{types.RoleStaff, false},
		{types.RoleEventOwner, true},
	}

	for _, tc := range cases {
		identity := Identity{ID: 1, Role: tc.role}

		if got := RestrictToOwned(identity); got != tc.want {
			t.Errorf("RestrictToOwned(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
