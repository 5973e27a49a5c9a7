package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DoctorAvailability is a recurring weekly window during which a doctor
// accepts bookings. Times are wall-clock, the window must satisfy
// StartTime < EndTime.
type DoctorAvailability struct {
	gorm.Model
	DoctorID    uint      `json:"doctor_id" gorm:"index"`
	Doctor      Doctor    `json:"doctor" gorm:"foreignKey:DoctorID"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartTime   string    `json:"start_time" gorm:"size:5"` // "HH:MM" in 24h
	EndTime     string    `json:"end_time" gorm:"size:5"`   // "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}
