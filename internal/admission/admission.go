// Package admission implements the registration admission protocol: the
// capacity- and uniqueness-checked acceptance of an RSVP against an event.
package admission

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eventease-dev/eventease/internal/lifecycle"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/go-playground/validator/v10"
)

// Registrant is an RSVP submission. Registrants do not need accounts.
type Registrant struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string
	Message string
}

// Store is the persistence contract the controller requires. Admit must
// execute its capacity check, uniqueness check and insert as one atomic unit
// relative to concurrent Admit calls on the same event; calls against
// different events must not serialize each other.
type Store interface {
	// FindEvent returns the event or ErrEventNotFound.
	FindEvent(ctx context.Context, eventID uint) (*models.Event, error)

	// Admit inserts the registration, failing with ErrEventFull,
	// ErrDuplicateRegistration or ErrEventNotFound as re-checked inside the
	// atomic scope.
	Admit(ctx context.Context, event *models.Event, reg *models.Registration) error
}

type Controller struct {
	store    Store
	policy   lifecycle.Policy
	validate *validator.Validate
	now      func() time.Time
	timeout  time.Duration
}

func NewController(store Store, policy lifecycle.Policy) *Controller {
	return &Controller{
		store:    store,
		policy:   policy,
		validate: validator.New(),
		now:      time.Now,
		timeout:  5 * time.Second,
	}
}

// Submit accepts or rejects one RSVP. Every failure is a typed outcome from
// this package; unexpected storage faults pass through unwrapped for the
// boundary to log.
func (c *Controller) Submit(ctx context.Context, eventID uint, registrant Registrant) (*models.Registration, error) {
	registrant.Name = strings.TrimSpace(registrant.Name)
	registrant.Email = strings.TrimSpace(registrant.Email)

	if err := c.validateRegistrant(registrant); err != nil {
		return nil, err
	}

	event, err := c.store.FindEvent(ctx, eventID)

	if err != nil {
		return nil, err
	}

	if ok, reason := c.policy.Registrable(event, c.now()); !ok {
		return nil, &NotRegistrableError{Reason: reason}
	}

	reg := &models.Registration{
		EventID: event.ID,
		Name:    registrant.Name,
		Email:   registrant.Email,
		Phone:   registrant.Phone,
		Message: registrant.Message,
		Status:  types.RegistrationConfirmed,
	}

	// Bounded wait on the admission scope: a submit that cannot commit in
	// time fails retryable instead of blocking indefinitely.
	admitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Admit(admitCtx, event, reg); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrContention
		}
		return nil, err
	}

	return reg, nil
}

func (c *Controller) validateRegistrant(registrant Registrant) error {
	err := c.validate.Struct(registrant)

	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors

	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))

	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Name":
			fields["name"] = "Name is required"
		case "Email":
			if fe.Tag() == "required" {
				fields["email"] = "Email is required"
			} else {
				fields["email"] = "Valid email is required"
			}
		}
	}

	return &ValidationError{Fields: fields}
}
