package scheduling

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medconnect/clinic-api/models"
)

// Store is the persistence surface the engine needs. The gorm-backed
// implementation locks appointment rows when reading inside a
// transaction, so the check-then-insert booking sequence is serialized
// per doctor.
type Store interface {
	DoctorByID(ctx context.Context, id uint) (*models.Doctor, error)
	PatientByID(ctx context.Context, id uint) (*models.Patient, error)
	// AvailabilityForDay returns the doctor's isAvailable windows for one
	// weekday, ordered by start time.
	AvailabilityForDay(ctx context.Context, doctorID uint, day models.DayOfWeek) ([]models.DoctorAvailability, error)
	// ActiveAppointments returns the doctor's non-cancelled appointments
	// on the given date.
	ActiveAppointments(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error)
	AppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	// Transaction runs fn against a transactional view of the store; all
	// writes commit or roll back together.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewStore wraps a gorm handle in the engine's Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).Preload("User").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (s *gormStore) PatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).Preload("User").First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (s *gormStore) AvailabilityForDay(ctx context.Context, doctorID uint, day models.DayOfWeek) ([]models.DoctorAvailability, error) {
	var windows []models.DoctorAvailability
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, day, true).
		Order("start_time").
		Find(&windows).Error
	return windows, err
}

func (s *gormStore) ActiveAppointments(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), models.StatusCancelled)
	if s.inTx {
		// Lock the day's rows so concurrent bookings for the same doctor
		// serialize on the conflict check.
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var appointments []models.Appointment
	err := q.Find(&appointments).Error
	return appointments, err
}

func (s *gormStore) AppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var appt models.Appointment
	err := q.First(&appt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (s *gormStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return mapCreateError(s.db.WithContext(ctx).Create(appt).Error)
}

// mapCreateError translates the unique-index violation on
// (doctor_id, date, start_time) into ErrSlotTaken. When a doctor has no
// appointments for a date yet, two concurrent transactions find no rows
// to lock and both pass the conflict scan; the loser only fails at the
// index, and that failure is still a taken slot, not an internal error.
func mapCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

func (s *gormStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.db.WithContext(ctx).Save(appt).Error
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}
