package scheduling

import "errors"

var (
	// ErrNotFound is returned when a referenced doctor, patient or
	// appointment does not exist (or the doctor is not approved yet).
	ErrNotFound = errors.New("record not found")

	// ErrSlotTaken is returned when the requested time is already occupied
	// by a non-cancelled appointment.
	ErrSlotTaken = errors.New("time slot not available")

	// ErrOutsideAvailability is returned when the requested time does not
	// fall within any of the doctor's availability windows.
	ErrOutsideAvailability = errors.New("time is outside the doctor's availability")

	// ErrInvalidTransition is returned when a status change violates the
	// appointment state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden is returned when the acting user may not change the
	// appointment.
	ErrForbidden = errors.New("not allowed to modify this appointment")
)
