package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/medconnect/clinic-api/models"
)

func TestAvailableSlots_NoAvailabilityConfigured(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %d", len(slots))
	}
}

func TestAvailableSlots_MorningWindow(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "12:00")
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range slots {
		if slot.StartTime != want[i] {
			t.Errorf("slot %d: expected start %s, got %s", i, want[i], slot.StartTime)
		}
		if !slot.Available {
			t.Errorf("slot %s: expected available", slot.StartTime)
		}
	}
	if slots[0].EndTime != "09:30" {
		t.Errorf("expected first slot to end at 09:30, got %s", slots[0].EndTime)
	}
}

func TestAvailableSlots_ExistingAppointmentMarksSlotTaken(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "12:00")
	f.data.createAppointment(&models.Appointment{
		DoctorID: 1, PatientID: 2, Date: monday,
		StartTime: "10:00", EndTime: "10:30", Status: models.StatusConfirmed,
	})
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	free := 0
	for _, slot := range slots {
		if slot.StartTime == "10:00" && slot.Available {
			t.Error("expected 10:00 slot to be taken")
		}
		if slot.Available {
			free++
		}
	}
	if free != 5 {
		t.Errorf("expected 5 free slots, got %d", free)
	}
}

func TestAvailableSlots_CancelledAppointmentIgnored(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "10:00")
	f.data.createAppointment(&models.Appointment{
		DoctorID: 1, PatientID: 2, Date: monday,
		StartTime: "09:00", EndTime: "09:30", Status: models.StatusCancelled,
	})
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || !slots[0].Available {
		t.Errorf("cancelled appointment should not block the 09:00 slot: %+v", slots)
	}
}

func TestAvailableSlots_LongerAppointmentBlocksOverlappingSlots(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "11:00")
	// A one-hour appointment occupies two 30-minute candidates.
	f.data.createAppointment(&models.Appointment{
		DoctorID: 1, PatientID: 2, Date: monday,
		StartTime: "09:30", EndTime: "10:30", Status: models.StatusConfirmed,
	})
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	taken := map[string]bool{}
	for _, slot := range slots {
		if !slot.Available {
			taken[slot.StartTime] = true
		}
	}
	if !taken["09:30"] || !taken["10:00"] {
		t.Errorf("expected 09:30 and 10:00 to be taken, got %v", taken)
	}
	if taken["09:00"] || taken["10:30"] {
		t.Errorf("expected 09:00 and 10:30 to stay free, got %v", taken)
	}
}

func TestAvailableSlots_MultipleWindowsSortedAndDeduplicated(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "14:00", "15:00")
	seedWindow(f, 1, models.Monday, "09:00", "10:00")
	// Overlapping window repeating part of the morning.
	seedWindow(f, 1, models.Monday, "09:30", "10:30")
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "14:00", "14:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %+v", len(want), len(slots), slots)
	}
	for i, slot := range slots {
		if slot.StartTime != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], slot.StartTime)
		}
	}
}

func TestAvailableSlots_WindowShorterThanSlot(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "09:20")
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("a 20-minute window fits no 30-minute slot, got %d", len(slots))
	}
}

func TestAvailableSlots_CustomSlotDuration(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Monday, "09:00", "10:00")
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots of 20 minutes, got %d", len(slots))
	}
	if slots[1].StartTime != "09:20" || slots[1].EndTime != "09:40" {
		t.Errorf("unexpected second slot: %+v", slots[1])
	}
}

func TestAvailableSlots_UnknownDoctor(t *testing.T) {
	e := newTestEngine(newFakeStore(), nil)

	_, err := e.AvailableSlots(context.Background(), 99, monday, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAvailableSlots_UnapprovedDoctor(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, false)
	seedWindow(f, 1, models.Monday, "09:00", "12:00")
	e := newTestEngine(f, nil)

	_, err := e.AvailableSlots(context.Background(), 1, monday, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unapproved doctor, got %v", err)
	}
}

func TestAvailableSlots_OtherWeekdayEmpty(t *testing.T) {
	f := newFakeStore()
	seedDoctor(f, 1, 10, true)
	seedWindow(f, 1, models.Tuesday, "09:00", "12:00")
	e := newTestEngine(f, nil)

	slots, err := e.AvailableSlots(context.Background(), 1, monday, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("Tuesday windows must not produce Monday slots, got %d", len(slots))
	}
}
