package models

import (
	"gorm.io/gorm"
)

type Rating struct {
	gorm.Model
	DoctorID  uint    `json:"doctor_id" gorm:"index"`
	Doctor    Doctor  `json:"doctor" gorm:"foreignKey:DoctorID"`
	PatientID uint    `json:"patient_id" gorm:"index"`
	Patient   Patient `json:"patient" gorm:"foreignKey:PatientID"`
	Value     int     `json:"value"`
	Comment   string  `json:"comment"`
}

// BeforeCreate clamps the rating into the allowed 1..5 range.
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.Value < 1 {
		r.Value = 1
	} else if r.Value > 5 {
		r.Value = 5
	}
	return nil
}

// HasExistingRating reports whether the patient already rated this doctor.
func (r *Rating) HasExistingRating(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Rating{}).
		Where("patient_id = ? AND doctor_id = ? AND deleted_at IS NULL", r.PatientID, r.DoctorID).
		Count(&count).Error
	return count > 0, err
}
