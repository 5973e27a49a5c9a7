package db

import (
	"log"

	"github.com/medconnect/clinic-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
		&models.DoctorAvailability{},
		&models.Appointment{},
		&models.Notification{},
		&models.MedicalReport{},
		&models.ContactMessage{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// At most one non-cancelled appointment may occupy a given
	// (doctor, date, start_time). Backs up the locked check-then-insert
	// in the scheduling engine.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot
		ON appointments (doctor_id, date, start_time)
		WHERE status <> 'cancelled' AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create booking uniqueness index: ", err)
	}

	log.Println("Migrations applied successfully")
}
