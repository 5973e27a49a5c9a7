package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/medconnect/clinic-api/models"
)

func bookPending(t *testing.T, e *Engine, start string) *models.Appointment {
	t.Helper()
	appt, err := e.Book(context.Background(), BookingRequest{
		DoctorID: 1, PatientID: 2, Date: monday, StartTime: start,
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	return appt
}

func TestSetStatus_DoctorConfirms(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	n := &fakeNotifier{}
	e := newTestEngine(f, n)
	appt := bookPending(t, e, "09:00")

	updated, err := e.SetStatus(context.Background(), appt.ID, models.StatusConfirmed, Actor{UserID: 10, Role: models.RoleDoctor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("expected confirmed, got %s", updated.Status)
	}
	// Booking notified the doctor, the confirmation notifies the patient.
	if n.count() != 2 {
		t.Fatalf("expected 2 notifications, got %d", n.count())
	}
	if n.calls[1].UserID != 20 {
		t.Errorf("status change should notify the patient's user id 20, got %d", n.calls[1].UserID)
	}
}

func TestSetStatus_InvalidTransitions(t *testing.T) {
	cases := []struct {
		name string
		from models.AppointmentStatus
		to   models.AppointmentStatus
	}{
		{"pending to completed", models.StatusPending, models.StatusCompleted},
		{"confirmed to pending", models.StatusConfirmed, models.StatusPending},
		{"completed to cancelled", models.StatusCompleted, models.StatusCancelled},
		{"completed to confirmed", models.StatusCompleted, models.StatusConfirmed},
		{"cancelled to confirmed", models.StatusCancelled, models.StatusConfirmed},
		{"cancelled to pending", models.StatusCancelled, models.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeStore()
			seedClinic(f)
			e := newTestEngine(f, &fakeNotifier{})
			appt := bookPending(t, e, "09:00")
			f.data.appointments[appt.ID].Status = tc.from

			_, err := e.SetStatus(context.Background(), appt.ID, tc.to, Actor{UserID: 10, Role: models.RoleDoctor})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
			if got := f.data.appointments[appt.ID].Status; got != tc.from {
				t.Errorf("status must stay %s after rejected transition, got %s", tc.from, got)
			}
		})
	}
}

func TestSetStatus_PatientMayOnlyCancel(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	e := newTestEngine(f, &fakeNotifier{})
	appt := bookPending(t, e, "09:00")
	patient := Actor{UserID: 20, Role: models.RolePatient}

	if _, err := e.SetStatus(context.Background(), appt.ID, models.StatusConfirmed, patient); !errors.Is(err, ErrForbidden) {
		t.Errorf("patient confirming should be forbidden, got %v", err)
	}
	if _, err := e.SetStatus(context.Background(), appt.ID, models.StatusCancelled, patient); err != nil {
		t.Errorf("patient cancelling a pending appointment should succeed, got %v", err)
	}
}

func TestSetStatus_WrongDoctorForbidden(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	seedDoctor(f, 3, 30, true)
	e := newTestEngine(f, &fakeNotifier{})
	appt := bookPending(t, e, "09:00")

	_, err := e.SetStatus(context.Background(), appt.ID, models.StatusConfirmed, Actor{UserID: 30, Role: models.RoleDoctor})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another doctor, got %v", err)
	}
}

func TestSetStatus_AdminMayTransition(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	e := newTestEngine(f, &fakeNotifier{})
	appt := bookPending(t, e, "09:00")

	updated, err := e.SetStatus(context.Background(), appt.ID, models.StatusCancelled, Actor{UserID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}
}

func TestSetStatus_UnknownAppointment(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	e := newTestEngine(f, &fakeNotifier{})

	_, err := e.SetStatus(context.Background(), 404, models.StatusConfirmed, Actor{UserID: 10, Role: models.RoleDoctor})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatus_CancellationFreesSlot(t *testing.T) {
	f := newFakeStore()
	seedClinic(f)
	e := newTestEngine(f, &fakeNotifier{})
	ctx := context.Background()
	appt := bookPending(t, e, "10:00")

	if _, err := e.Book(ctx, BookingRequest{DoctorID: 1, PatientID: 2, Date: monday, StartTime: "10:00"}); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("slot should be taken before cancellation, got %v", err)
	}

	if _, err := e.SetStatus(ctx, appt.ID, models.StatusCancelled, Actor{UserID: 10, Role: models.RoleDoctor}); err != nil {
		t.Fatalf("cancellation failed: %v", err)
	}

	ok, err := e.IsSlotAvailable(ctx, 1, monday, "10:00")
	if err != nil || !ok {
		t.Fatalf("cancelled slot should be available again, got ok=%v err=%v", ok, err)
	}
	if _, err := e.Book(ctx, BookingRequest{DoctorID: 1, PatientID: 2, Date: monday, StartTime: "10:00"}); err != nil {
		t.Errorf("rebooking a cancelled slot should succeed, got %v", err)
	}
}
