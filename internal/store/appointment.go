package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dental-clinic-server/internal/models"
)

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrNotFound         = errors.New("appointment not found")
	ErrDuplicate        = errors.New("duplicate appointment entry")
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrInvalidDate      = errors.New("invalid date")
)

// ValidationError wraps a schema constraint violation detected before insert.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// AppointmentStore persists appointment records over a shared gorm handle
// acquired once at process start.
type AppointmentStore struct {
	db *gorm.DB
}

// NewAppointmentStore creates a store around an open database handle.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// Create persists a new record. CreatedAt is assigned at insert time; any
// caller-supplied value is discarded.
func (s *AppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	appointment.CreatedAt = time.Time{}
	appointment.UpdatedAt = time.Time{}

	if err := s.db.WithContext(ctx).Create(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListAll returns every record, newest first.
func (s *AppointmentStore) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&appointments).Error
	return appointments, err
}

// ListByTimeframe returns records created within a named relative window.
func (s *AppointmentStore) ListByTimeframe(ctx context.Context, timeframe string) ([]models.Appointment, error) {
	start, end, err := TimeframeBounds(timeframe, time.Now())
	if err != nil {
		return nil, err
	}
	return s.listRange(ctx, start, end)
}

// ListByRange returns records created between two calendar dates (inclusive)
// along with their count. Dates use the 2006-01-02 layout; the end date is
// extended to the last instant of its day.
func (s *AppointmentStore) ListByRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, int, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidDate, endDate)
	}
	end = EndOfDay(end)

	appointments, err := s.listRange(ctx, start, end)
	if err != nil {
		return nil, 0, err
	}
	return appointments, len(appointments), nil
}

// Confirm marks an appointment confirmed and returns the updated record.
// Re-confirming an already confirmed record is a no-op success.
func (s *AppointmentStore) Confirm(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appointment.Status == models.StatusConfirmed {
		return &appointment, nil
	}

	appointment.Status = models.StatusConfirmed
	if err := s.db.WithContext(ctx).Save(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Delete removes an appointment. A second delete of the same id is ErrNotFound.
func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AppointmentStore) listRange(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&appointments).Error
	return appointments, err
}
