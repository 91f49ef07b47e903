package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eventease-dev/eventease/internal/admission"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

func openEvent() *models.Event {
	return &models.Event{
		Title:     "Meetup",
		StartDate: time.Now().Add(time.Hour),
		IsPublic:  true,
		Status:    types.EventPublished,
		CreatorID: 1,
	}
}

func admit(t *testing.T, mem *Memory, event *models.Event, email string) {
	t.Helper()

	err := mem.Admit(context.Background(), event, &models.Registration{
		EventID: event.ID,
		Name:    "Guest",
		Email:   email,
		Status:  types.RegistrationConfirmed,
	})

	if err != nil {
		t.Fatalf("admit %s failed: %v", email, err)
	}
}

// Deleting an event cascades: no registration outlives it.
func TestDeleteEventCascades(t *testing.T) {
	mem := NewMemory()
	event := mem.CreateEvent(openEvent())

	for i := 0; i < 4; i++ {
		admit(t, mem, event, fmt.Sprintf("guest%d@example.com", i))
	}

	if regs := mem.Registrations(event.ID); len(regs) != 4 {
		t.Fatalf("got %d registrations before delete, want 4", len(regs))
	}

	mem.DeleteEvent(event.ID)

	if regs := mem.Registrations(event.ID); len(regs) != 0 {
		t.Errorf("got %d orphaned registrations, want 0", len(regs))
	}

	if _, err := mem.FindEvent(context.Background(), event.ID); !errors.Is(err, admission.ErrEventNotFound) {
		t.Errorf("got %v, want ErrEventNotFound", err)
	}
}

func TestAdmitAgainstDeletedEvent(t *testing.T) {
	mem := NewMemory()
	event := mem.CreateEvent(openEvent())
	mem.DeleteEvent(event.ID)

	err := mem.Admit(context.Background(), event, &models.Registration{
		EventID: event.ID,
		Name:    "Guest",
		Email:   "guest@example.com",
		Status:  types.RegistrationConfirmed,
	})

	if !errors.Is(err, admission.ErrEventNotFound) {
		t.Fatalf("got %v, want ErrEventNotFound", err)
	}
}

func TestAdmitCancelledContext(t *testing.T) {
	mem := NewMemory()
	event := mem.CreateEvent(openEvent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mem.Admit(ctx, event, &models.Registration{
		EventID: event.ID,
		Name:    "Guest",
		Email:   "guest@example.com",
		Status:  types.RegistrationConfirmed,
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestFindEventReturnsCopy(t *testing.T) {
	mem := NewMemory()
	event := mem.CreateEvent(openEvent())

	found, err := mem.FindEvent(context.Background(), event.ID)

	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	found.Title = "Mutated"

	again, err := mem.FindEvent(context.Background(), event.ID)

	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if again.Title != "Meetup" {
		t.Error("FindEvent must return a copy, stored event was mutated")
	}
}

// Pending registrations hold the email slot but not a capacity slot.
func TestAdmitCountsOnlyConfirmed(t *testing.T) {
	mem := NewMemory()
	event := openEvent()
	max := 1
	event.MaxAttendees = &max
	event = mem.CreateEvent(event)

	err := mem.Admit(context.Background(), event, &models.Registration{
		EventID: event.ID,
		Name:    "Waitlisted",
		Email:   "pending@example.com",
		Status:  types.RegistrationPending,
	})

	if err != nil {
		t.Fatalf("pending admit failed: %v", err)
	}

	admit(t, mem, event, "confirmed@example.com")

	err = mem.Admit(context.Background(), event, &models.Registration{
		EventID: event.ID,
		Name:    "Late",
		Email:   "late@example.com",
		Status:  types.RegistrationConfirmed,
	})

	if !errors.Is(err, admission.ErrEventFull) {
		t.Fatalf("got %v, want ErrEventFull", err)
	}
}
