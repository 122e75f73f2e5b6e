package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/booking"
	"github.com/simitmodi/Stride-sub000/internal/config"
	"github.com/simitmodi/Stride-sub000/internal/middleware"
	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/services"
)

// AppointmentHandler manages appointment booking endpoints.
type AppointmentHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	telegram *services.TelegramService
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, telegram *services.TelegramService) *AppointmentHandler {
	return &AppointmentHandler{db: db, cfg: cfg, telegram: telegram}
}

type serviceSelectionRequest struct {
	ServiceCategory    string   `json:"service_category"`
	Service            string   `json:"service"`
	ConfirmedDocuments []string `json:"confirmed_documents"`
}

type createAppointmentRequest struct {
	BankName      string                    `json:"bank_name"`
	BranchName    string                    `json:"branch_name"`
	BranchAddress string                    `json:"branch_address"`
	Date          string                    `json:"date"`
	TimeSlot      string                    `json:"time_slot"`
	Services      []serviceSelectionRequest `json:"services"`
}

type createdAppointment struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Service string    `json:"service"`
}

type failedService struct {
	Service string `json:"service"`
	Error   string `json:"error"`
}

// CreateAppointments books one appointment per selected service in a single
// submission. The loop is deliberately not transactional: a failure part way
// through leaves the already-created appointments in place and reports an
// aggregate error naming what succeeded and what did not.
func (h *AppointmentHandler) CreateAppointments(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.BankName == "" || req.BranchName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "bank_name and branch_name are required")
	}

	if len(req.Services) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one service must be selected")
	}

	// Calendar days are parsed at UTC midnight so the stored date column
	// round-trips without timezone drift; branch-local clock time only
	// matters when a slot's start instant is computed.
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected yyyy-MM-dd")
	}

	if err := h.validateBookableDate(date, req.TimeSlot); err != nil {
		return err
	}

	var created []createdAppointment
	var failed []failedService

	for _, svc := range req.Services {
		if svc.Service == "" {
			failed = append(failed, failedService{Service: svc.Service, Error: "service name is required"})
			break
		}

		appt := models.Appointment{
			UserID:             user.ID,
			BankName:           req.BankName,
			BranchName:         req.BranchName,
			BranchAddress:      req.BranchAddress,
			Date:               date,
			TimeSlot:           req.TimeSlot,
			ServiceCategory:    svc.ServiceCategory,
			Service:            svc.Service,
			ConfirmedDocuments: pq.StringArray(svc.ConfirmedDocuments),
		}
		appt.ID = uuid.New()
		appt.Code = booking.AppointmentCode(appt.ID.String(), req.BankName, req.TimeSlot)

		if err := h.db.Create(&appt).Error; err != nil {
			failed = append(failed, failedService{Service: svc.Service, Error: err.Error()})
			break
		}

		// Append to the profile's appointment index before moving on, so a
		// later failure leaves every created record fully registered.
		err := h.db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("appointment_ids", gorm.Expr("array_append(appointment_ids, ?)", appt.ID.String())).Error
		if err != nil {
			failed = append(failed, failedService{Service: svc.Service, Error: err.Error()})
			break
		}

		created = append(created, createdAppointment{ID: appt.ID, Code: appt.Code, Service: appt.Service})

		go h.notifyNewAppointment(appt, user)
	}

	if len(failed) > 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error": fmt.Sprintf("%d of %d appointments could not be created",
				len(req.Services)-len(created), len(req.Services)),
			"created": created,
			"failed":  failed,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// ListAppointments returns the customer's appointment history, filtered and
// grouped by calendar day.
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var appointments []models.Appointment
	if err := h.db.Where("user_id = ?", user.ID).
		Order("created_at asc").
		Find(&appointments).Error; err != nil {
		return err
	}

	filter := booking.ParseFilter(c.Query("filter"))
	order := booking.ParseSortOrder(c.Query("sort"))
	now := time.Now().In(h.cfg.Location)

	history := booking.BuildHistory(appointments, filter, order, now)

	message := ""
	switch {
	case history.NoRecords:
		message = "no appointment history yet"
	case history.NoMatches:
		message = "no appointments match the selected filter"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    history,
		"message": message,
	})
}

// GetAppointment returns a single appointment for the authenticated user.
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var appt models.Appointment
	if err := h.db.First(&appt, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "appointment not found")
		}
		return err
	}

	now := time.Now().In(h.cfg.Location)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    appt,
		"actionable": !appt.Cancelled &&
			booking.IsActionable(h.localDate(appt.Date), appt.TimeSlot, now),
	})
}

type rescheduleRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// RescheduleAppointment moves an appointment to a new date and slot. Only
// the date and time fields change, and only while the appointment is more
// than the cutoff window away.
func (h *AppointmentHandler) RescheduleAppointment(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req rescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	newDate, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected yyyy-MM-dd")
	}

	if err := h.validateBookableDate(newDate, req.TimeSlot); err != nil {
		return err
	}

	appt, err := h.loadActionable(id, user.ID)
	if err != nil {
		return err
	}

	if err := h.db.Model(&models.Appointment{}).Where("id = ?", appt.ID).
		Updates(map[string]interface{}{
			"date":      newDate,
			"time_slot": req.TimeSlot,
		}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "appointment rescheduled"})
}

// CancelAppointment soft-deletes an appointment under the same cutoff rule.
// The record stays for history; the slot is not freed because no capacity is
// tracked anywhere.
func (h *AppointmentHandler) CancelAppointment(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	appt, err := h.loadActionable(id, user.ID)
	if err != nil {
		return err
	}

	if err := h.db.Model(&models.Appointment{}).Where("id = ?", appt.ID).
		Update("cancelled", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "appointment cancelled"})
}

// loadActionable fetches an appointment owned by the user and verifies it
// can still be edited or cancelled.
func (h *AppointmentHandler) loadActionable(id, userID uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := h.db.First(&appt, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "appointment not found")
		}
		return nil, err
	}

	if appt.Cancelled {
		return nil, fiber.NewError(fiber.StatusConflict, "appointment is already cancelled")
	}

	now := time.Now().In(h.cfg.Location)
	if !booking.IsActionable(h.localDate(appt.Date), appt.TimeSlot, now) {
		return nil, fiber.NewError(fiber.StatusConflict,
			"appointments can only be changed more than 12 hours in advance")
	}

	return &appt, nil
}

// localDate re-anchors a stored calendar day at midnight in the branch
// timezone so slot start instants compare correctly against now.
func (h *AppointmentHandler) localDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, h.cfg.Location)
}

// validateBookableDate rejects holidays, past dates and unknown slots.
func (h *AppointmentHandler) validateBookableDate(date time.Time, slot string) error {
	if !booking.IsValidSlot(slot) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown time slot")
	}

	if booking.IsBankHoliday(date) {
		return fiber.NewError(fiber.StatusBadRequest, "the branch is closed on the selected date")
	}

	today := time.Now().In(h.cfg.Location).Format("2006-01-02")
	if date.Format("2006-01-02") < today {
		return fiber.NewError(fiber.StatusBadRequest, "the selected date is in the past")
	}

	return nil
}

func (h *AppointmentHandler) notifyNewAppointment(appt models.Appointment, user models.User) {
	if h.telegram == nil {
		return
	}

	notification := services.AppointmentNotification{
		Code:          appt.Code,
		BankName:      appt.BankName,
		BranchName:    appt.BranchName,
		Date:          appt.Date.Format("2006-01-02"),
		TimeSlot:      appt.TimeSlot,
		Service:       appt.Service,
		CustomerName:  user.FirstName + " " + user.LastName,
		CustomerEmail: user.Email,
	}

	if err := h.telegram.NotifyNewAppointment(notification); err != nil {
		log.Printf("[Appointment] Telegram notification failed: %v", err)
	}
}
