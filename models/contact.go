package models

import (
	"gorm.io/gorm"
)

type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:100"`
	Email   string `json:"email"`
	Subject string `json:"subject" gorm:"size:200"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
