// Package cron runs the background reminder job for upcoming
// appointments.
package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/logger"
	"github.com/medconnect/clinic-api/models"
	"github.com/medconnect/clinic-api/utils"
)

// StartCronJobs initializes and starts the scheduler for appointment
// reminders.
func StartCronJobs() {
	c := cron.New()
	// Appointment start times have minute granularity, so an
	// every-minute tick matched against exactly one clock value
	// sends each reminder once.
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		logger.Get().Fatal("failed to register reminder job", zap.Error(err))
	}
	c.Start()
	logger.Get().Info("reminder scheduler started")
}

// sendAppointmentReminders mails patients whose confirmed appointment
// starts in exactly one hour.
func sendAppointmentReminders() {
	now := time.Now()
	target := now.Add(time.Hour)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient.User").Preload("Doctor.User").
		Where("status = ? AND date = ? AND start_time = ?",
			models.StatusConfirmed, target.Format("2006-01-02"), target.Format("15:04")).
		Find(&appointments).Error
	if err != nil {
		logger.Get().Error("failed to fetch appointments for reminders", zap.Error(err))
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			logger.Get().Warn("failed to send reminder",
				zap.Uint("appointment_id", appointment.ID),
				zap.Error(err))
			continue
		}
		logger.Get().Info("sent appointment reminder",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("patient_email", appointment.Patient.User.Email))
	}
}

// sendReminderEmail constructs and sends the reminder email.
func sendReminderEmail(appointment *models.Appointment) error {
	location := "at the clinic"
	if appointment.IsVirtual {
		location = fmt.Sprintf(`online: <a href="%s">%s</a>`,
			appointment.MeetingLink, appointment.MeetingLink)
	}

	subject := "Reminder: Your appointment starts in one hour"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> Dr. %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Where:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The MedConnect Team</p>
	`, appointment.Patient.User.Name, appointment.Doctor.User.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		location)

	return utils.SendEmail(appointment.Patient.User.Email, subject, body)
}
