// Package notifications persists in-app notifications and hands them to
// the scheduling engine as its fire-and-forget delivery channel.
package notifications

import (
	"context"

	"gorm.io/gorm"

	"github.com/medconnect/clinic-api/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Notify stores a notification for the user. Implements
// scheduling.Notifier.
func (s *Service) Notify(ctx context.Context, userID uint, title, message, category string, relatedID uint) error {
	notification := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      category,
		RelatedID: relatedID,
	}
	return s.db.WithContext(ctx).Create(&notification).Error
}

// Latest returns the user's most recent notifications, newest first.
func (s *Service) Latest(ctx context.Context, userID uint, count int) ([]models.Notification, error) {
	if count <= 0 {
		count = 10
	}
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(count).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for the user.
func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the user's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// MarkAllRead marks every unread notification of the user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
