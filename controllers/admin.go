package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/logger"
	"github.com/medconnect/clinic-api/models"
	"github.com/medconnect/clinic-api/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dashboard returns aggregate counts for the admin landing page.
func Dashboard(c *fiber.Ctx) error {
	var stats struct {
		Doctors        int64 `json:"doctors"`
		PendingDoctors int64 `json:"pending_doctors"`
		Patients       int64 `json:"patients"`
		Appointments   int64 `json:"appointments"`
		Messages       int64 `json:"unread_messages"`
	}

	db.DB.Model(&models.User{}).Where("role = ? AND is_approved = true", models.RoleDoctor).Count(&stats.Doctors)
	db.DB.Model(&models.User{}).Where("role = ? AND is_approved = false", models.RoleDoctor).Count(&stats.PendingDoctors)
	db.DB.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&stats.Patients)
	db.DB.Model(&models.Appointment{}).Count(&stats.Appointments)
	db.DB.Model(&models.ContactMessage{}).Where("is_read = false").Count(&stats.Messages)

	return c.JSON(stats)
}

// PendingDoctors lists doctors awaiting approval.
func PendingDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Preload("User").
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.role = ? AND users.is_approved = false", models.RoleDoctor).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pending doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// ApproveDoctor marks a doctor account as approved and notifies them.
func ApproveDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if err := db.DB.Preload("User").First(&doctor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.User{}).
		Where("id = ?", doctor.UserID).
		Update("is_approved", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to approve doctor",
			Error:   err.Error(),
		})
	}

	Notifications.Notify(c.Context(), doctor.UserID,
		"Account Approved",
		"Your doctor account has been approved. You can now set your availability and receive bookings.",
		models.NotificationSystem, doctor.ID)

	if err := utils.SendApprovalEmail(doctor.User.Email, doctor.User.Name); err != nil {
		logger.Get().Warn("approval email failed",
			zap.Uint("doctor_id", doctor.ID),
			zap.Error(err))
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Doctor %s approved", doctor.User.Name)})
}

// RejectDoctor removes a pending doctor account entirely.
func RejectDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if err := db.DB.Preload("User").First(&doctor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	if doctor.User.IsApproved {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Doctor is already approved",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&doctor).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, doctor.UserID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reject doctor",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Doctor registration rejected"})
}

// ListUsers returns all users, optionally filtered by role.
func ListUsers(c *fiber.Ctx) error {
	query := db.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	return c.JSON(users)
}

// ListContactMessages returns contact form submissions, newest first.
func ListContactMessages(c *fiber.Ctx) error {
	var messages []models.ContactMessage
	if err := db.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}

// MarkContactMessageRead flags a contact message as handled.
func MarkContactMessageRead(c *fiber.Ctx) error {
	result := db.DB.Model(&models.ContactMessage{}).
		Where("id = ?", c.Params("id")).
		Update("is_read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update message",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Message not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Message marked as read"})
}

// DeleteContactMessage removes a contact message.
func DeleteContactMessage(c *fiber.Ctx) error {
	result := db.DB.Delete(&models.ContactMessage{}, c.Params("id"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete message",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Message not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
