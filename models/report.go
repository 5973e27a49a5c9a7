package models

import (
	"time"

	"gorm.io/gorm"
)

type MedicalReport struct {
	gorm.Model
	DoctorID      uint        `json:"doctor_id" gorm:"index"`
	Doctor        Doctor      `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID     uint        `json:"patient_id" gorm:"index"`
	Patient       Patient     `json:"patient" gorm:"foreignKey:PatientID"`
	AppointmentID *uint       `json:"appointment_id"`
	Appointment   Appointment `json:"appointment" gorm:"foreignKey:AppointmentID"`
	Title         string      `json:"title"`
	Type          string      `json:"type" gorm:"size:50"`
	Diagnosis     string      `json:"diagnosis"`
	Treatment     string      `json:"treatment"`
	Prescription  string      `json:"prescription"`
	Notes         string      `json:"notes"`
	FileURL       string      `json:"file_url"`
	ReportDate    time.Time   `json:"report_date"`
}
