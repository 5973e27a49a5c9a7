package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether no further status transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Appointment struct {
	gorm.Model
	DoctorID  uint              `json:"doctor_id" gorm:"index"`
	Doctor    Doctor            `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID uint              `json:"patient_id" gorm:"index"`
	Patient   Patient           `json:"patient" gorm:"foreignKey:PatientID"`
	Date      time.Time         `json:"date" gorm:"type:date"`
	StartTime string            `json:"start_time" gorm:"size:5"` // "HH:MM" in 24h
	EndTime   string            `json:"end_time" gorm:"size:5"`   // "HH:MM" in 24h
	Status    AppointmentStatus `json:"status" gorm:"size:20;index"`
	Type      string            `json:"type" gorm:"size:50"`
	IsVirtual bool              `json:"is_virtual"`
	// MeetingLink is set only for virtual appointments.
	MeetingLink string `json:"meeting_link,omitempty"`
	Notes       string `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition validates the appointment status state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
// Completed and cancelled are terminal.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown appointment status %q", a.Status)
	}
	return nil
}
