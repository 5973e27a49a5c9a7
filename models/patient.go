package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	UserID          uint          `json:"user_id" gorm:"uniqueIndex"`
	User            User          `json:"user" gorm:"foreignKey:UserID"`
	DateOfBirth     *time.Time    `json:"date_of_birth" gorm:"type:date"`
	Gender          string        `json:"gender" gorm:"size:10"`
	BloodType       string        `json:"blood_type" gorm:"size:5"`
	MedicalHistory  string        `json:"medical_history"`
	PrimaryDoctorID *uint         `json:"primary_doctor_id"`
	LastVisit       *time.Time    `json:"last_visit"`
	Appointments    []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
}
