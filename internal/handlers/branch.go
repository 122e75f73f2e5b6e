package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/utils"
)

// BranchHandler serves the bank-employee dashboard: appointments booked at
// the employee's own branch.
type BranchHandler struct {
	db *gorm.DB
}

// NewBranchHandler constructs BranchHandler.
func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{db: db}
}

// ListBranchAppointments returns active appointments for the employee's
// branch, optionally restricted to one date, ordered by date and slot.
func (h *BranchHandler) ListBranchAppointments(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if user.BankName == "" || user.BranchName == "" {
		return fiber.NewError(fiber.StatusForbidden, "no branch assigned to this account")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Appointment{}).
		Where("bank_name = ? AND branch_name = ? AND cancelled = ?", user.BankName, user.BranchName, false)

	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected yyyy-MM-dd")
		}
		query = query.Where("date = ?", date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var appointments []models.Appointment
	if err := query.Preload("User").
		Order("date asc, time_slot asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&appointments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    appointments,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
