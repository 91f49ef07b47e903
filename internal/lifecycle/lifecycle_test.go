package lifecycle

import (
	"testing"
	"time"

	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

func futureEvent(status string, public bool) *models.Event {
	return &models.Event{
		Status:    status,
		IsPublic:  public,
		StartDate: time.Now().Add(24 * time.Hour),
	}
}

func TestIsPubliclyVisible(t *testing.T) {
	cases := []struct {
		status string
		public bool
		want   bool
	}{
		{types.EventPublished, true, true},
		{types.EventPublished, false, false},
		{types.EventDraft, true, false},
		{types.EventCancelled, true, false},
		{types.EventCompleted, true, false},
	}

	for _, tc := range cases {
		event := futureEvent(tc.status, tc.public)

		if got := IsPubliclyVisible(event); got != tc.want {
			t.Errorf("IsPubliclyVisible(%s, public=%v) = %v, want %v", tc.status, tc.public, got, tc.want)
		}
	}
}

func TestRegistrable(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		event  *models.Event
		policy Policy
		want   bool
		reason NotRegistrableReason
	}{
		{"published public", futureEvent(types.EventPublished, true), Policy{}, true, ""},
		{"draft", futureEvent(types.EventDraft, true), Policy{}, false, ReasonNotPublished},
		{"cancelled", futureEvent(types.EventCancelled, true), Policy{}, false, ReasonNotPublished},
		{"completed", futureEvent(types.EventCompleted, true), Policy{}, false, ReasonNotPublished},
		{"private", futureEvent(types.EventPublished, false), Policy{}, false, ReasonNotPublic},
		{
			"past start without cutoff",
			&models.Event{Status: types.EventPublished, IsPublic: true, StartDate: now.Add(-time.Hour)},
			Policy{},
			true,
			"",
		},
		{
			"past start with cutoff",
			&models.Event{Status: types.EventPublished, IsPublic: true, StartDate: now.Add(-time.Hour)},
			Policy{CloseAfterStart: true},
			false,
			ReasonClosed,
		},
		{
			"future start with cutoff",
			&models.Event{Status: types.EventPublished, IsPublic: true, StartDate: now.Add(time.Hour)},
			Policy{CloseAfterStart: true},
			true,
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := tc.policy.Registrable(tc.event, now)

			if ok != tc.want {
				t.Fatalf("Registrable = %v, want %v", ok, tc.want)
			}

			if reason != tc.reason {
				t.Errorf("reason = %q, want %q", reason, tc.reason)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{types.EventDraft, types.EventPublished, true},
		{types.EventPublished, types.EventCancelled, true},
		{types.EventPublished, types.EventCompleted, true},
		{types.EventCancelled, types.EventPublished, false},
		{types.EventCompleted, types.EventDraft, false},
		{types.EventCancelled, types.EventCancelled, true},
		{types.EventCompleted, types.EventCompleted, true},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if Terminal(types.EventDraft) || Terminal(types.EventPublished) {
		t.Error("DRAFT and PUBLISHED are not terminal")
	}

	if !Terminal(types.EventCancelled) || !Terminal(types.EventCompleted) {
		t.Error("CANCELLED and COMPLETED are terminal")
	}
}

func TestPolicyFromEnv(t *testing.T) {
	t.Setenv("RSVP_CLOSE_AFTER_START", "")

	if PolicyFromEnv().CloseAfterStart {
		t.Error("unset env should leave the cutoff off")
	}

	t.Setenv("RSVP_CLOSE_AFTER_START", "true")

	if !PolicyFromEnv().CloseAfterStart {
		t.Error("RSVP_CLOSE_AFTER_START=true should enable the cutoff")
	}
}
