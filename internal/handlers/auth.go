package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/config"
	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/services"
	"github.com/simitmodi/Stride-sub000/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	events *services.SessionEvents
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, events *services.SessionEvents) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, events: events}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Initials    string `json:"initials"`
	Role        string `json:"role"`
	BankName    string `json:"bank_name"`
	BranchName  string `json:"branch_name"`
	Designation string `json:"designation"`
	IFSCCode    string `json:"ifsc_code"`
}

// Register creates a new user account. The role is fixed at creation and
// never changes afterwards.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if !strings.Contains(req.Email, "@") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email address")
	}

	if len(req.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleCustomer
	case models.RoleCustomer, models.RoleBank, models.RoleDeveloper:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}

	if role == models.RoleBank && (req.BankName == "" || req.BranchName == "") {
		return fiber.NewError(fiber.StatusBadRequest, "bank accounts require bank_name and branch_name")
	}

	var existing models.User
	if err := h.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	initials := req.Initials
	if initials == "" {
		initials = deriveInitials(req.FirstName, req.LastName)
	}

	user := models.User{
		Email:         req.Email,
		Username:      req.Username,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Initials:      initials,
		Role:          role,
		BankName:      req.BankName,
		BranchName:    req.BranchName,
		Designation:   req.Designation,
		IFSCCode:      req.IFSCCode,
		PasswordHash:  passwordHash,
		IsVerified:    false,
		SessionMarker: uuid.NewString(),
	}

	if req.DateOfBirth != "" {
		dob, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date_of_birth, expected yyyy-MM-dd")
		}
		user.DateOfBirth = &dob
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	if user.Phone != "" {
		code, err := generateVerificationCode()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
		}

		verification := models.SMSVerification{
			Phone:     user.Phone,
			Code:      code,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Verified:  false,
		}

		if err := h.db.Create(&verification).Error; err != nil {
			return err
		}
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.SessionMarker, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    publicUser(user),
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user. Each sign-in rotates the session
// marker, which signs out any session opened on another device.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	marker := uuid.NewString()
	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("session_marker", marker).Error; err != nil {
		return err
	}
	user.SessionMarker = marker

	if err := h.events.PublishMarker(c.Context(), user.ID.String(), marker); err != nil {
		// Open sessions will still be caught by the per-request check.
		fmt.Printf("session marker publish failed: %v\n", err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, marker, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    publicUser(user),
		"token":   token,
	})
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// Verify handles SMS code validation for phone verification.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var verification models.SMSVerification
	err := h.db.Where("phone = ?", req.Phone).
		Order("created_at desc").
		First(&verification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "verification code not found")
		}
		return err
	}

	if verification.Code != req.Code {
		return fiber.NewError(fiber.StatusBadRequest, "invalid verification code")
	}

	if verification.ExpiresAt.Before(time.Now()) {
		return fiber.NewError(fiber.StatusBadRequest, "verification code expired")
	}

	verification.Verified = true
	now := time.Now()
	verification.UsedAt = &now
	if err := h.db.Save(&verification).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.User{}).Where("phone = ?", req.Phone).
		Update("is_verified", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"verified": true,
	})
}

type reauthRequest struct {
	Password string `json:"password"`
}

// Reauth re-verifies the user's credentials, opening a short window during
// which sensitive operations are permitted.
func (h *AuthHandler) Reauth(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req reauthRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("last_reauth_at", now).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"expires_at": now.Add(h.cfg.ReauthWindow),
	})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangePassword updates the password. Requires a recent re-authentication.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password_hash", hash).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password updated"})
}

// DeleteAccount hard-deletes the user record. Requires a recent
// re-authentication. Appointment records are retained for branch history.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "account deleted"})
}

// Logout rotates the session marker without issuing a new token, which
// invalidates every outstanding session for the user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	marker := uuid.NewString()
	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("session_marker", marker).Error; err != nil {
		return err
	}

	if err := h.events.PublishMarker(c.Context(), user.ID.String(), marker); err != nil {
		fmt.Printf("session marker publish failed: %v\n", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "signed out"})
}

func publicUser(user models.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"username":    user.Username,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"phone":       user.Phone,
		"initials":    user.Initials,
		"role":        user.Role,
		"is_verified": user.IsVerified,
	}
}

func deriveInitials(firstName, lastName string) string {
	initials := ""
	if firstName != "" {
		initials += strings.ToUpper(firstName[:1])
	}
	if lastName != "" {
		initials += strings.ToUpper(lastName[:1])
	}
	return initials
}

func generateVerificationCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
