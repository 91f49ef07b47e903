// Package store provides the admission.Store implementations: a gorm-backed
// store for production and an in-memory store for tests.
package store

import (
	"context"
	"errors"

	"github.com/eventease-dev/eventease/internal/admission"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	var event models.Event

	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admission.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

// Admit runs the capacity check, the uniqueness check and the insert in one
// transaction holding a row lock on the event. The lock serializes admissions
// per event only; submissions against other events proceed concurrently. The
// caller bounds the wait through ctx.
func (s *GormStore) Admit(ctx context.Context, event *models.Event, reg *models.Registration) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Event

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, event.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return admission.ErrEventNotFound
			}
			return err
		}

		// Duplicate before capacity: a repeat submission reports the
		// duplicate even when the event has since filled up.
		var existing int64

		err := tx.Model(&models.Registration{}).
			Where("event_id = ? AND email = ?", locked.ID, reg.Email).
			Count(&existing).Error

		if err != nil {
			return err
		}

		if existing > 0 {
			return admission.ErrDuplicateRegistration
		}

		if locked.MaxAttendees != nil {
			var confirmed int64

			err := tx.Model(&models.Registration{}).
				Where("event_id = ? AND status = ?", locked.ID, types.RegistrationConfirmed).
				Count(&confirmed).Error

			if err != nil {
				return err
			}

			if confirmed >= int64(*locked.MaxAttendees) {
				return admission.ErrEventFull
			}
		}

		if err := tx.Create(reg).Error; err != nil {
			// idx_event_email backstop, in case a row slipped in outside
			// the lock.
			if isUniqueViolation(err) {
				return admission.ErrDuplicateRegistration
			}
			return err
		}

		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
