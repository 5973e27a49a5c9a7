package models

import (
	"gorm.io/gorm"
)

const (
	NotificationAppointment = "appointment"
	NotificationReport      = "report"
	NotificationSystem      = "system"
)

type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	User      User   `json:"user" gorm:"foreignKey:UserID"`
	Title     string `json:"title" gorm:"size:100"`
	Message   string `json:"message"`
	Type      string `json:"type" gorm:"size:50"`
	RelatedID uint   `json:"related_id"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
}
