package store

import (
	"context"
	"sync"
	"time"

	"github.com/eventease-dev/eventease/internal/admission"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
)

// Memory is an in-memory admission.Store. It mirrors the gorm store's
// guarantees with a per-event lock table, so the concurrency properties of
// the admission protocol can be exercised without a database.
type Memory struct {
	mu            sync.RWMutex
	events        map[uint]models.Event
	registrations map[uint][]models.Registration
	locks         map[uint]*sync.Mutex
	nextEventID   uint
	nextRegID     uint
}

func NewMemory() *Memory {
	return &Memory{
		events:        make(map[uint]models.Event),
		registrations: make(map[uint][]models.Registration),
		locks:         make(map[uint]*sync.Mutex),
	}
}

// CreateEvent stores the event and assigns its id.
func (m *Memory) CreateEvent(event *models.Event) *models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEventID++
	event.ID = m.nextEventID
	event.CreatedAt = time.Now()
	m.events[event.ID] = *event

	return event
}

// UpdateEvent replaces the stored event.
func (m *Memory) UpdateEvent(event *models.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[event.ID] = *event
}

// DeleteEvent removes the event and cascades to its registrations.
func (m *Memory) DeleteEvent(eventID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.events, eventID)
	delete(m.registrations, eventID)
	delete(m.locks, eventID)
}

// Registrations returns a copy of the event's registrations.
func (m *Memory) Registrations(eventID uint) []models.Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	regs := m.registrations[eventID]
	out := make([]models.Registration, len(regs))
	copy(out, regs)

	return out
}

func (m *Memory) FindEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	event, ok := m.events[eventID]

	if !ok {
		return nil, admission.ErrEventNotFound
	}

	return &event, nil
}

func (m *Memory) eventLock(eventID uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[eventID]

	if !ok {
		lock = &sync.Mutex{}
		m.locks[eventID] = lock
	}

	return lock
}

// Admit serializes submissions per event and re-checks capacity and
// uniqueness under the lock, exactly like the transactional store.
func (m *Memory) Admit(ctx context.Context, event *models.Event, reg *models.Registration) error {
	lock := m.eventLock(event.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.events[event.ID]

	if !ok {
		return admission.ErrEventNotFound
	}

	regs := m.registrations[current.ID]

	for _, existing := range regs {
		if existing.Email == reg.Email {
			return admission.ErrDuplicateRegistration
		}
	}

	if current.MaxAttendees != nil {
		confirmed := 0

		for _, existing := range regs {
			if existing.Status == types.RegistrationConfirmed {
				confirmed++
			}
		}

		if confirmed >= *current.MaxAttendees {
			return admission.ErrEventFull
		}
	}

	m.nextRegID++
	reg.ID = m.nextRegID
	reg.CreatedAt = time.Now()
	m.registrations[current.ID] = append(regs, *reg)

	return nil
}
