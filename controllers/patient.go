package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/models"
	"github.com/medconnect/clinic-api/scheduling"
	"github.com/medconnect/clinic-api/utils"
)

// ListDoctors returns approved doctors with optional search, specialty
// and city filters, paginated.
func ListDoctors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Doctor{}).
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.is_approved = ?", true).
		Preload("User")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("users.name ILIKE ? OR doctors.specialty ILIKE ? OR doctors.workplace ILIKE ?", like, like, like)
	}
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("doctors.specialty = ?", specialty)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("doctors.city = ?", city)
	}

	var count int64
	query.Count(&count)

	var doctors []models.Doctor
	if err := query.Order("doctors.rating DESC").Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"doctors": doctors,
		"total":   count,
		"page":    page,
		"limit":   limit,
		"pages":   (int(count) + limit - 1) / limit,
	})
}

// GetDoctor returns one approved doctor with availability windows.
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.Doctor
	err := db.DB.Preload("User").Preload("Availability").
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("doctors.id = ? AND users.is_approved = ?", id, true).
		First(&doctor).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// GetAvailableSlots returns the doctor's slots for a date.
// Query: date=YYYY-MM-DD, optional duration in minutes.
func GetAvailableSlots(c *fiber.Ctx) error {
	doctorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor id",
		})
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}
	duration, _ := strconv.Atoi(c.Query("duration", "0"))

	slots, err := Scheduler.AvailableSlots(c.Context(), uint(doctorID), date, duration)
	if err != nil {
		return schedulingError(c, err)
	}
	return c.JSON(fiber.Map{
		"doctor_id": doctorID,
		"date":      date.Format("2006-01-02"),
		"slots":     slots,
	})
}

type bookInput struct {
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Type      string `json:"type"`
	IsVirtual bool   `json:"is_virtual"`
	Notes     string `json:"notes"`
}

// BookAppointment reserves a slot for the authenticated patient.
func BookAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(bookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}

	var patient models.Patient
	if err := db.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient profile not found",
			Error:   err.Error(),
		})
	}

	appt, err := Scheduler.Book(c.Context(), scheduling.BookingRequest{
		DoctorID:    input.DoctorID,
		PatientID:   patient.ID,
		Date:        date,
		StartTime:   input.StartTime,
		SlotMinutes: input.Duration,
		Type:        input.Type,
		IsVirtual:   input.IsVirtual,
		Notes:       input.Notes,
	})
	if err != nil {
		return schedulingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appt)
}

// MyAppointments lists the authenticated patient's appointments, newest
// first.
func MyAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if err := db.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient profile not found",
			Error:   err.Error(),
		})
	}

	var appointments []models.Appointment
	query := db.DB.Preload("Doctor.User").Where("patient_id = ?", patient.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("date DESC, start_time DESC").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// CancelAppointment lets the patient cancel their own pending or
// confirmed appointment.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	apptID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
		})
	}

	appt, err := Scheduler.SetStatus(c.Context(), uint(apptID), models.StatusCancelled, scheduling.Actor{
		UserID: userID,
		Role:   models.RolePatient,
	})
	if err != nil {
		return schedulingError(c, err)
	}
	return c.JSON(appt)
}

// RateDoctor records a rating for a doctor the patient has completed an
// appointment with, and refreshes the doctor's aggregate.
func RateDoctor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(struct {
		DoctorID uint   `json:"doctor_id"`
		Value    int    `json:"value"`
		Comment  string `json:"comment"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var patient models.Patient
	if err := db.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient profile not found",
			Error:   err.Error(),
		})
	}

	// Only patients with a completed appointment may rate.
	var completed int64
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ? AND status = ?",
			input.DoctorID, patient.ID, models.StatusCompleted).
		Count(&completed)
	if completed == 0 {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You can only rate a doctor after a completed appointment",
		})
	}

	rating := models.Rating{
		DoctorID:  input.DoctorID,
		PatientID: patient.ID,
		Value:     input.Value,
		Comment:   input.Comment,
	}
	if exists, err := rating.HasExistingRating(db.DB); err == nil && exists {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "You have already rated this doctor",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}
		// Refresh the aggregate on the doctor row.
		return tx.Exec(`
			UPDATE doctors SET
				rating = (SELECT AVG(value) FROM ratings WHERE doctor_id = ? AND deleted_at IS NULL),
				rating_count = (SELECT COUNT(*) FROM ratings WHERE doctor_id = ? AND deleted_at IS NULL)
			WHERE id = ?
		`, input.DoctorID, input.DoctorID, input.DoctorID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save rating",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// MyReports lists the authenticated patient's medical reports.
func MyReports(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var patient models.Patient
	if err := db.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient profile not found",
			Error:   err.Error(),
		})
	}

	var reports []models.MedicalReport
	if err := db.DB.Preload("Doctor.User").
		Where("patient_id = ?", patient.ID).
		Order("report_date DESC").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reports",
			Error:   err.Error(),
		})
	}
	return c.JSON(reports)
}
