package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medconnect/clinic-api/models"
)

// BookingRequest carries everything needed to reserve a slot.
type BookingRequest struct {
	DoctorID    uint
	PatientID   uint
	Date        time.Time
	StartTime   string // "HH:MM" in 24h
	SlotMinutes int    // 0 means DefaultSlotDuration
	Type        string
	IsVirtual   bool
	Notes       string
}

// slotState classifies a candidate time against the doctor's windows and
// existing appointments. Must be called with a transactional store when
// used on the booking path.
func (e *Engine) slotState(ctx context.Context, store Store, doctorID uint, date time.Time, slot interval) error {
	day := models.DayOfWeek(date.Weekday())
	windows, err := store.AvailabilityForDay(ctx, doctorID, day)
	if err != nil {
		return err
	}
	contained := false
	for _, window := range windows {
		start, err := parseClock(window.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(window.EndTime)
		if err != nil {
			continue
		}
		if start <= slot.start && slot.end <= end {
			contained = true
			break
		}
	}
	if !contained {
		return ErrOutsideAvailability
	}

	appointments, err := store.ActiveAppointments(ctx, doctorID, date)
	if err != nil {
		return err
	}
	for _, busy := range busyIntervals(appointments, slot.end-slot.start) {
		if slot.overlaps(busy) {
			return ErrSlotTaken
		}
	}
	return nil
}

// IsSlotAvailable reports whether the doctor can be booked at the given
// date and time. Absence of data means "not available": an unknown or
// unapproved doctor yields false, not an error.
func (e *Engine) IsSlotAvailable(ctx context.Context, doctorID uint, date time.Time, startTime string) (bool, error) {
	doctor, err := e.store.DoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !doctor.User.IsApproved {
		return false, nil
	}

	start, err := parseClock(startTime)
	if err != nil {
		return false, err
	}
	switch err := e.slotState(ctx, e.store, doctorID, date, interval{start: start, end: start + DefaultSlotDuration}); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrOutsideAvailability):
		return false, nil
	default:
		return false, err
	}
}

// Book reserves a slot for a patient. The availability check and the
// insert run in one transaction with the day's appointment rows locked,
// so concurrent requests for the same slot cannot both succeed; a
// partial unique index on (doctor_id, date, start_time) for
// non-cancelled rows backs this up at the storage boundary. The doctor
// is notified best-effort after commit.
func (e *Engine) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	doctor, err := e.store.DoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.User.IsApproved {
		return nil, ErrNotFound
	}
	patient, err := e.store.PatientByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotDuration
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	slot := interval{start: start, end: start + slotMinutes}

	appt := &models.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		StartTime: formatClock(slot.start),
		EndTime:   formatClock(slot.end),
		Status:    models.StatusPending,
		Type:      req.Type,
		IsVirtual: req.IsVirtual,
		Notes:     req.Notes,
	}
	if req.IsVirtual {
		appt.MeetingLink = "https://meet.medconnect.io/" + uuid.NewString()
	}

	err = e.store.Transaction(ctx, func(tx Store) error {
		// Fresh check inside the lock scope.
		if err := e.slotState(ctx, tx, req.DoctorID, req.Date, slot); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("appointment booked",
		zap.Uint("appointment_id", appt.ID),
		zap.Uint("doctor_id", req.DoctorID),
		zap.Uint("patient_id", req.PatientID),
		zap.String("start_time", appt.StartTime))

	e.notify(ctx, doctor.UserID,
		"New Appointment Request",
		fmt.Sprintf("%s requested an appointment on %s at %s.",
			patient.User.Name, req.Date.Format("2006-01-02"), appt.StartTime),
		models.NotificationAppointment, appt.ID)

	return appt, nil
}
