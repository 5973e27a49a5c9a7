package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	UserID          uint                 `json:"user_id" gorm:"uniqueIndex"`
	User            User                 `json:"user" gorm:"foreignKey:UserID"`
	Specialty       string               `json:"specialty" gorm:"size:100;index"`
	Education       string               `json:"education"`
	Workplace       string               `json:"workplace"`
	City            string               `json:"city" gorm:"size:100;index"`
	Experience      int                  `json:"experience"`
	License         string               `json:"license"`
	Bio             string               `json:"bio"`
	ConsultationFee float64              `json:"consultation_fee" gorm:"type:decimal(10,2)"`
	ImageURL        string               `json:"image_url"`
	Rating          float64              `json:"rating" gorm:"type:decimal(3,1);default:0"`
	RatingCount     int                  `json:"rating_count" gorm:"default:0"`
	Availability    []DoctorAvailability `json:"availability,omitempty" gorm:"foreignKey:DoctorID"`
	Appointments    []Appointment        `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
}
