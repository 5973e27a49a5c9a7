package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/medconnect/clinic-api/models"
)

// ---------- In-memory fakes ----------

type fakeData struct {
	doctors      map[uint]*models.Doctor
	patients     map[uint]*models.Patient
	availability []models.DoctorAvailability
	appointments map[uint]*models.Appointment
	nextID       uint
}

// fakeStore serializes transactions with a mutex, mirroring the row
// locking the gorm store relies on.
type fakeStore struct {
	mu   sync.Mutex
	data *fakeData
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: &fakeData{
		doctors:      make(map[uint]*models.Doctor),
		patients:     make(map[uint]*models.Patient),
		appointments: make(map[uint]*models.Appointment),
	}}
}

func (f *fakeStore) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.doctorByID(id)
}

func (f *fakeStore) PatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.patientByID(id)
}

func (f *fakeStore) AvailabilityForDay(ctx context.Context, doctorID uint, day models.DayOfWeek) ([]models.DoctorAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.availabilityForDay(doctorID, day)
}

func (f *fakeStore) ActiveAppointments(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.activeAppointments(doctorID, date)
}

func (f *fakeStore) AppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.appointmentByID(id)
}

func (f *fakeStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.createAppointment(appt)
}

func (f *fakeStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.saveAppointment(appt)
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Snapshot appointments so a failed transaction leaves no partial
	// writes behind.
	snapshot := make(map[uint]*models.Appointment, len(f.data.appointments))
	for id, appt := range f.data.appointments {
		clone := *appt
		snapshot[id] = &clone
	}
	savedID := f.data.nextID

	if err := fn(&fakeTx{data: f.data}); err != nil {
		f.data.appointments = snapshot
		f.data.nextID = savedID
		return err
	}
	return nil
}

// fakeTx exposes the same data without re-locking; it only exists inside
// a held transaction.
type fakeTx struct {
	data *fakeData
}

func (t *fakeTx) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	return t.data.doctorByID(id)
}

func (t *fakeTx) PatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	return t.data.patientByID(id)
}

func (t *fakeTx) AvailabilityForDay(ctx context.Context, doctorID uint, day models.DayOfWeek) ([]models.DoctorAvailability, error) {
	return t.data.availabilityForDay(doctorID, day)
}

func (t *fakeTx) ActiveAppointments(ctx context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	return t.data.activeAppointments(doctorID, date)
}

func (t *fakeTx) AppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return t.data.appointmentByID(id)
}

func (t *fakeTx) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return t.data.createAppointment(appt)
}

func (t *fakeTx) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return t.data.saveAppointment(appt)
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

func (d *fakeData) doctorByID(id uint) (*models.Doctor, error) {
	doctor, ok := d.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *doctor
	return &clone, nil
}

func (d *fakeData) patientByID(id uint) (*models.Patient, error) {
	patient, ok := d.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *patient
	return &clone, nil
}

func (d *fakeData) availabilityForDay(doctorID uint, day models.DayOfWeek) ([]models.DoctorAvailability, error) {
	var windows []models.DoctorAvailability
	for _, w := range d.availability {
		if w.DoctorID == doctorID && w.DayOfWeek == day && w.IsAvailable {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

func (d *fakeData) activeAppointments(doctorID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range d.appointments {
		if appt.DoctorID == doctorID &&
			appt.Date.Format("2006-01-02") == date.Format("2006-01-02") &&
			appt.Status != models.StatusCancelled {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (d *fakeData) appointmentByID(id uint) (*models.Appointment, error) {
	appt, ok := d.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *appt
	return &clone, nil
}

func (d *fakeData) createAppointment(appt *models.Appointment) error {
	d.nextID++
	appt.ID = d.nextID
	clone := *appt
	d.appointments[appt.ID] = &clone
	return nil
}

func (d *fakeData) saveAppointment(appt *models.Appointment) error {
	clone := *appt
	d.appointments[appt.ID] = &clone
	return nil
}

// fakeNotifier records deliveries and can be forced to fail.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

type notifyCall struct {
	UserID    uint
	Title     string
	Category  string
	RelatedID uint
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uint, title, message, category string, relatedID uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.calls = append(n.calls, notifyCall{UserID: userID, Title: title, Category: category, RelatedID: relatedID})
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

// ---------- Seed helpers ----------

// monday is a fixed reference date whose weekday is Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func seedDoctor(f *fakeStore, doctorID, userID uint, approved bool) {
	f.data.doctors[doctorID] = &models.Doctor{
		UserID: userID,
		User:   models.User{ID: userID, Name: "Dr. Ahmed", Role: models.RoleDoctor, IsApproved: approved},
	}
	f.data.doctors[doctorID].ID = doctorID
}

func seedPatient(f *fakeStore, patientID, userID uint) {
	f.data.patients[patientID] = &models.Patient{
		UserID: userID,
		User:   models.User{ID: userID, Name: "Sara", Role: models.RolePatient},
	}
	f.data.patients[patientID].ID = patientID
}

func seedWindow(f *fakeStore, doctorID uint, day models.DayOfWeek, start, end string) {
	f.data.availability = append(f.data.availability, models.DoctorAvailability{
		DoctorID:    doctorID,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	})
}

func newTestEngine(f *fakeStore, n *fakeNotifier) *Engine {
	return New(f, n, nil)
}
