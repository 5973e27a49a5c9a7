package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/medconnect/clinic-api/models"
)

// TimeSlot is a candidate bookable interval derived from a doctor's
// availability. Derived data, never persisted.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// parseClock parses an "HH:MM" wall-clock string to minutes since
// midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// interval is a half-open [start, end) range in minutes since midnight.
type interval struct {
	start, end int
}

func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// busyIntervals projects non-cancelled appointments to their occupied
// time ranges. An appointment without a parseable end time occupies one
// slot length from its start.
func busyIntervals(appointments []models.Appointment, slotMinutes int) []interval {
	busy := make([]interval, 0, len(appointments))
	for _, appt := range appointments {
		start, err := parseClock(appt.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(appt.EndTime)
		if err != nil || end <= start {
			end = start + slotMinutes
		}
		busy = append(busy, interval{start: start, end: end})
	}
	return busy
}

// buildSlots walks each availability window in slot-sized steps and marks
// candidates that overlap an existing appointment as taken. Windows are
// processed in ascending start order; duplicate start times produced by
// overlapping windows are emitted once.
func buildSlots(windows []models.DoctorAvailability, appointments []models.Appointment, slotMinutes int) []TimeSlot {
	sorted := make([]models.DoctorAvailability, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	busy := busyIntervals(appointments, slotMinutes)

	var slots []TimeSlot
	seen := make(map[int]bool)
	for _, window := range sorted {
		start, err := parseClock(window.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(window.EndTime)
		if err != nil {
			continue
		}
		for cur := start; cur+slotMinutes <= end; cur += slotMinutes {
			if seen[cur] {
				continue
			}
			seen[cur] = true
			candidate := interval{start: cur, end: cur + slotMinutes}
			available := true
			for _, b := range busy {
				if candidate.overlaps(b) {
					available = false
					break
				}
			}
			slots = append(slots, TimeSlot{
				StartTime: formatClock(candidate.start),
				EndTime:   formatClock(candidate.end),
				Available: available,
			})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

// AvailableSlots returns the doctor's slots for one calendar date, in
// chronological order. A doctor with no availability configured for that
// weekday yields an empty slice, which is a valid, displayable state. A
// missing or unapproved doctor yields ErrNotFound.
func (e *Engine) AvailableSlots(ctx context.Context, doctorID uint, date time.Time, slotMinutes int) ([]TimeSlot, error) {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotDuration
	}

	doctor, err := e.store.DoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.User.IsApproved {
		return nil, ErrNotFound
	}

	day := models.DayOfWeek(date.Weekday())
	windows, err := e.store.AvailabilityForDay(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []TimeSlot{}, nil
	}

	appointments, err := e.store.ActiveAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return buildSlots(windows, appointments, slotMinutes), nil
}
