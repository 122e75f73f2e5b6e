package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/models"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	data := fiber.Map{
		"id":              user.ID,
		"email":           user.Email,
		"username":        user.Username,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"phone":           user.Phone,
		"date_of_birth":   user.DateOfBirth,
		"initials":        user.Initials,
		"role":            user.Role,
		"is_verified":     user.IsVerified,
		"appointment_ids": user.AppointmentIDs,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}

	if user.Role == models.RoleBank {
		data["bank_name"] = user.BankName
		data["branch_name"] = user.BranchName
		data["designation"] = user.Designation
		data["ifsc_code"] = user.IFSCCode
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Username    *string `json:"username"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
	Initials    *string `json:"initials"`
}

// UpdateProfile updates profile fields piecemeal. The role and the bank
// assignment fields are fixed at registration and cannot be changed here.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Initials != nil {
		updates["initials"] = *req.Initials
	}
	if req.DateOfBirth != nil {
		dob, err := time.ParseInLocation("2006-01-02", *req.DateOfBirth, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date_of_birth, expected yyyy-MM-dd")
		}
		updates["date_of_birth"] = dob
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}
