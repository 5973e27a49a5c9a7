package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/medconnect/clinic-api/db"
	"github.com/medconnect/clinic-api/logger"
	"github.com/medconnect/clinic-api/models"
	"github.com/medconnect/clinic-api/redis"
	"github.com/medconnect/clinic-api/utils"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// Patient fields
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	BloodType   string     `json:"blood_type"`

	// Doctor fields
	Specialty  string  `json:"specialty"`
	City       string  `json:"city"`
	Workplace  string  `json:"workplace"`
	Experience int     `json:"experience"`
	License    string  `json:"license"`
	Fee        float64 `json:"consultation_fee"`
}

func createUser(input *registerInput, role string) (*models.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
		// Patients are usable right away; doctors wait for admin approval.
		IsApproved: role != models.RoleDoctor,
	}
	return user, nil
}

func sendVerificationCode(user *models.User) {
	otp, err := utils.GenerateOTP()
	if err != nil {
		logger.Get().Warn("failed to generate OTP", zap.String("email", user.Email), zap.Error(err))
		return
	}
	if err := redis.StoreOTP(user.Email, otp); err != nil {
		logger.Get().Warn("failed to store OTP", zap.String("email", user.Email), zap.Error(err))
		return
	}
	if err := utils.SendOTPEmail(user.Email, user.Name, otp); err != nil {
		logger.Get().Warn("failed to send OTP email", zap.String("email", user.Email), zap.Error(err))
	}
}

// RegisterPatient creates a patient account with its profile.
func RegisterPatient(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	user, err := createUser(input, models.RolePatient)
	if err != nil {
		ferr := err.(*fiber.Error)
		return c.Status(ferr.Code).JSON(utils.ErrorResponse{Message: ferr.Message})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		patient := models.Patient{
			UserID:      user.ID,
			DateOfBirth: input.DateOfBirth,
			Gender:      input.Gender,
			BloodType:   input.BloodType,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create account",
			Error:   err.Error(),
		})
	}

	sendVerificationCode(user)

	return c.Status(fiber.StatusCreated).JSON(user)
}

// RegisterDoctor creates a doctor account pending admin approval.
func RegisterDoctor(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Specialty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Specialty is required",
		})
	}

	user, err := createUser(input, models.RoleDoctor)
	if err != nil {
		ferr := err.(*fiber.Error)
		return c.Status(ferr.Code).JSON(utils.ErrorResponse{Message: ferr.Message})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		doctor := models.Doctor{
			UserID:          user.ID,
			Specialty:       input.Specialty,
			City:            input.City,
			Workplace:       input.Workplace,
			Experience:      input.Experience,
			License:         input.License,
			ConsultationFee: input.Fee,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create account",
			Error:   err.Error(),
		})
	}

	sendVerificationCode(user)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registration received. Your account will be reviewed by an administrator.",
	})
}

// VerifyEmail checks the OTP sent at registration.
func VerifyEmail(c *fiber.Ctx) error {
	input := new(struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	ok, err := redis.VerifyOTP(input.Email, input.OTP)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to verify code",
			Error:   err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid or expired verification code",
		})
	}

	if err := db.DB.Model(&models.User{}).
		Where("email = ?", input.Email).
		Update("is_verified", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update account",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Email verified"})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	input := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}
	if user.Role == models.RoleDoctor && !user.IsApproved {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Your registration is still pending administrator approval",
		})
	}

	secret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate refresh token",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetProfile returns the current user's account with its role profile.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	switch user.Role {
	case models.RoleDoctor:
		var doctor models.Doctor
		db.DB.Where("user_id = ?", user.ID).First(&doctor)
		return c.JSON(fiber.Map{"user": user, "doctor": doctor})
	case models.RolePatient:
		var patient models.Patient
		db.DB.Where("user_id = ?", user.ID).First(&patient)
		return c.JSON(fiber.Map{"user": user, "patient": patient})
	default:
		return c.JSON(fiber.Map{"user": user})
	}
}

// ResendVerification issues a fresh email verification code.
func ResendVerification(c *fiber.Ctx) error {
	input := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}
	if user.IsVerified {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Email is already verified",
		})
	}

	sendVerificationCode(&user)
	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(c *fiber.Ctx) error {
	input := new(struct {
		RefreshToken string `json:"refreshToken"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	secret := os.Getenv("JWT_SECRET")
	token, err := jwt.Parse(input.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid or expired refresh token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid token claims",
		})
	}
	userID, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid token claims",
		})
	}

	var user models.User
	if err := db.DB.First(&user, uint(userID)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User no longer exists",
		})
	}

	accessClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	tokenString, err := accessToken.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"token": tokenString})
}
