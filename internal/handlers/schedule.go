package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/booking"
	"github.com/simitmodi/Stride-sub000/internal/models"
)

// ScheduleHandler serves the fixed slot table, date availability and the
// per-service document checklists.
type ScheduleHandler struct {
	db *gorm.DB
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// ListSlots returns the bookable half-hour slots. The set is the same every
// business day.
func (h *ScheduleHandler) ListSlots(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    booking.TimeSlots(),
	})
}

// CheckAvailability reports whether a calendar date is bookable and which
// slots it offers. Closure covers Sundays and the 2nd and 4th Saturday.
func (h *ScheduleHandler) CheckAvailability(c *fiber.Ctx) error {
	raw := c.Query("date")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "date query parameter is required")
	}

	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected yyyy-MM-dd")
	}

	if booking.IsBankHoliday(date) {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"date":   raw,
				"open":   false,
				"reason": "bank holiday",
				"slots":  []string{},
			},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"date":  raw,
			"open":  true,
			"slots": booking.TimeSlots(),
		},
	})
}

// GetChecklist returns the required documents for a service category.
func (h *ScheduleHandler) GetChecklist(c *fiber.Ctx) error {
	category, err := url.QueryUnescape(c.Params("category"))
	if err != nil || category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid service category")
	}

	var checklist models.DocumentChecklist
	if err := h.db.Where("service_category = ?", category).First(&checklist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "no checklist for this service category")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": checklist})
}
