package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medconnect/clinic-api/models"
)

// Actor identifies the user attempting a status change.
type Actor struct {
	UserID uint
	Role   string
}

// SetStatus transitions an appointment through its state machine. Admins
// and the assigned doctor may perform any valid transition; the booking
// patient may only cancel a pending or confirmed appointment. The
// counterpart is notified best-effort after commit.
func (e *Engine) SetStatus(ctx context.Context, appointmentID uint, newStatus models.AppointmentStatus, actor Actor) (*models.Appointment, error) {
	var appt *models.Appointment
	err := e.store.Transaction(ctx, func(tx Store) error {
		var err error
		appt, err = tx.AppointmentByID(ctx, appointmentID)
		if err != nil {
			return err
		}

		if err := e.authorizeStatusChange(ctx, tx, appt, newStatus, actor); err != nil {
			return err
		}
		if err := appt.CanTransition(newStatus); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		appt.Status = newStatus
		return tx.SaveAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("appointment status changed",
		zap.Uint("appointment_id", appt.ID),
		zap.String("status", string(newStatus)),
		zap.String("actor_role", actor.Role))

	e.notifyCounterpart(ctx, appt, actor)
	return appt, nil
}

func (e *Engine) authorizeStatusChange(ctx context.Context, store Store, appt *models.Appointment, newStatus models.AppointmentStatus, actor Actor) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleDoctor:
		doctor, err := store.DoctorByID(ctx, appt.DoctorID)
		if err != nil {
			return err
		}
		if doctor.UserID != actor.UserID {
			return ErrForbidden
		}
		return nil
	case models.RolePatient:
		patient, err := store.PatientByID(ctx, appt.PatientID)
		if err != nil {
			return err
		}
		if patient.UserID != actor.UserID || newStatus != models.StatusCancelled {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// notifyCounterpart tells the other party about a status change: the
// patient when a doctor or admin acted, the doctor when the patient
// cancelled.
func (e *Engine) notifyCounterpart(ctx context.Context, appt *models.Appointment, actor Actor) {
	title := fmt.Sprintf("Appointment Status Update: %s", appt.Status)

	if actor.Role == models.RolePatient {
		doctor, err := e.store.DoctorByID(ctx, appt.DoctorID)
		if err != nil {
			e.log.Warn("counterpart lookup failed", zap.Uint("doctor_id", appt.DoctorID), zap.Error(err))
			return
		}
		message := fmt.Sprintf("The appointment on %s at %s has been cancelled by the patient.",
			appt.Date.Format("2006-01-02"), appt.StartTime)
		e.notify(ctx, doctor.UserID, title, message, models.NotificationAppointment, appt.ID)
		return
	}

	patient, err := e.store.PatientByID(ctx, appt.PatientID)
	if err != nil {
		e.log.Warn("counterpart lookup failed", zap.Uint("patient_id", appt.PatientID), zap.Error(err))
		return
	}
	var message string
	switch appt.Status {
	case models.StatusConfirmed:
		message = fmt.Sprintf("Your appointment on %s at %s has been confirmed.",
			appt.Date.Format("2006-01-02"), appt.StartTime)
	case models.StatusCompleted:
		message = "Your appointment has been completed. You can now view your medical report."
	default:
		message = fmt.Sprintf("Your appointment on %s has been cancelled.",
			appt.Date.Format("2006-01-02"))
	}
	e.notify(ctx, patient.UserID, title, message, models.NotificationAppointment, appt.ID)
}
