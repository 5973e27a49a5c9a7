package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/models"
	"github.com/medconnect/clinic-api/scheduling"
	"github.com/medconnect/clinic-api/utils"
)

// doctorForUser resolves the doctor profile of the authenticated user.
func doctorForUser(c *fiber.Ctx) (*models.Doctor, error) {
	userID := c.Locals("userID").(uint)
	var doctor models.Doctor
	if err := db.DB.Preload("User").Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

type availabilityInput struct {
	DayOfWeek   models.DayOfWeek `json:"day_of_week"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	IsAvailable *bool            `json:"is_available"`
}

func (in *availabilityInput) validate() error {
	if in.DayOfWeek < models.Sunday || in.DayOfWeek > models.Saturday {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return fmt.Errorf("start_time must be HH:MM")
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return fmt.Errorf("end_time must be HH:MM")
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}

// GetAvailability lists the authenticated doctor's availability windows.
func GetAvailability(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	var windows []models.DoctorAvailability
	if err := db.DB.Where("doctor_id = ?", doctor.ID).
		Order("day_of_week, start_time").
		Find(&windows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(windows)
}

// CreateAvailability adds a weekly availability window.
func CreateAvailability(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	input := new(availabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := input.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	window := models.DoctorAvailability{
		DoctorID:    doctor.ID,
		DayOfWeek:   input.DayOfWeek,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: input.IsAvailable == nil || *input.IsAvailable,
	}
	if err := db.DB.Create(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create availability",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

// UpdateAvailability edits one of the doctor's own windows.
func UpdateAvailability(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	var window models.DoctorAvailability
	if err := db.DB.Where("id = ? AND doctor_id = ?", c.Params("id"), doctor.ID).
		First(&window).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability window not found",
			Error:   err.Error(),
		})
	}

	input := &availabilityInput{
		DayOfWeek: window.DayOfWeek,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := input.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	window.DayOfWeek = input.DayOfWeek
	window.StartTime = input.StartTime
	window.EndTime = input.EndTime
	if input.IsAvailable != nil {
		window.IsAvailable = *input.IsAvailable
	}
	if err := db.DB.Save(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(window)
}

// DeleteAvailability removes one of the doctor's windows.
func DeleteAvailability(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	result := db.DB.Where("id = ? AND doctor_id = ?", c.Params("id"), doctor.ID).
		Delete(&models.DoctorAvailability{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete availability",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability window not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DoctorAppointments lists the authenticated doctor's appointments.
func DoctorAppointments(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	query := db.DB.Preload("Patient.User").Where("doctor_id = ?", doctor.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC, start_time").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// UpdateAppointmentStatus transitions one of the doctor's appointments.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	apptID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
		})
	}

	input := new(struct {
		Status models.AppointmentStatus `json:"status"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	appt, err := Scheduler.SetStatus(c.Context(), uint(apptID), input.Status, scheduling.Actor{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		return schedulingError(c, err)
	}
	return c.JSON(appt)
}

// CreateReport files a medical report for one of the doctor's patients,
// optionally attached to an appointment and with an uploaded file.
func CreateReport(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	input := new(struct {
		PatientID     uint   `json:"patient_id"`
		AppointmentID *uint  `json:"appointment_id"`
		Title         string `json:"title"`
		Type          string `json:"type"`
		Diagnosis     string `json:"diagnosis"`
		Treatment     string `json:"treatment"`
		Prescription  string `json:"prescription"`
		Notes         string `json:"notes"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Diagnosis == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Diagnosis is required",
		})
	}

	var patient models.Patient
	if err := db.DB.Preload("User").First(&patient, input.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	report := models.MedicalReport{
		DoctorID:      doctor.ID,
		PatientID:     input.PatientID,
		AppointmentID: input.AppointmentID,
		Title:         input.Title,
		Type:          input.Type,
		Diagnosis:     input.Diagnosis,
		Treatment:     input.Treatment,
		Prescription:  input.Prescription,
		Notes:         input.Notes,
		ReportDate:    time.Now(),
	}
	if err := db.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create report",
			Error:   err.Error(),
		})
	}

	// Tell the patient a report is ready; best-effort.
	Notifications.Notify(c.Context(), patient.UserID,
		"New Medical Report",
		fmt.Sprintf("Dr. %s published a new medical report for you.", doctor.User.Name),
		models.NotificationReport, report.ID)

	return c.Status(fiber.StatusCreated).JSON(report)
}

// UploadReportFile attaches a file to an existing report.
func UploadReportFile(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	var report models.MedicalReport
	if err := db.DB.Where("id = ? AND doctor_id = ?", c.Params("id"), doctor.ID).
		First(&report).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Report not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing file",
			Error:   err.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to open file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadReportFile(c.Context(), file, fmt.Sprintf("report-%d", report.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload file",
			Error:   err.Error(),
		})
	}

	report.FileURL = url
	if err := db.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update report",
			Error:   err.Error(),
		})
	}
	return c.JSON(report)
}

// UpdateDoctorProfile edits the doctor's own profile fields.
func UpdateDoctorProfile(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	input := new(struct {
		Specialty  string   `json:"specialty"`
		Education  string   `json:"education"`
		Workplace  string   `json:"workplace"`
		City       string   `json:"city"`
		Experience *int     `json:"experience"`
		Bio        string   `json:"bio"`
		Fee        *float64 `json:"consultation_fee"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Specialty != "" {
		doctor.Specialty = input.Specialty
	}
	if input.Education != "" {
		doctor.Education = input.Education
	}
	if input.Workplace != "" {
		doctor.Workplace = input.Workplace
	}
	if input.City != "" {
		doctor.City = input.City
	}
	if input.Experience != nil {
		doctor.Experience = *input.Experience
	}
	if input.Bio != "" {
		doctor.Bio = input.Bio
	}
	if input.Fee != nil {
		doctor.ConsultationFee = *input.Fee
	}

	if err := db.DB.Save(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// UploadDoctorImage sets the doctor's profile image.
func UploadDoctorImage(c *fiber.Ctx) error {
	doctor, err := doctorForUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing image",
			Error:   err.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to open image",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfileImage(c.Context(), file, fmt.Sprintf("doctor-%d", doctor.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	doctor.ImageURL = url
	if err := db.DB.Save(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}
