package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/simitmodi/Stride-sub000/internal/models"
	"github.com/simitmodi/Stride-sub000/internal/services"
)

const minFeedbackMessageLength = 20

// FeedbackHandler manages support/complaint submissions.
type FeedbackHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewFeedbackHandler constructs FeedbackHandler.
func NewFeedbackHandler(db *gorm.DB, telegram *services.TelegramService) *FeedbackHandler {
	return &FeedbackHandler{db: db, telegram: telegram}
}

type feedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// SubmitFeedback stores one support message and returns its id as a
// reference number. Submissions are never edited or deleted afterwards.
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Subject == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and subject are required")
	}

	if !strings.Contains(req.Email, "@") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email address")
	}

	if !validFeedbackCategory(req.Category) {
		return fiber.NewError(fiber.StatusBadRequest, "category must be one of Complaint, Suggestion, Feedback, Other")
	}

	if len(strings.TrimSpace(req.Message)) < minFeedbackMessageLength {
		return fiber.NewError(fiber.StatusBadRequest, "message is too short")
	}

	feedback := models.Feedback{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   "Pending",
	}

	if err := h.db.Create(&feedback).Error; err != nil {
		return err
	}

	go h.notifyFeedback(feedback)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"reference": feedback.ID,
		"status":    feedback.Status,
	})
}

func validFeedbackCategory(category string) bool {
	for _, c := range models.FeedbackCategories {
		if c == category {
			return true
		}
	}
	return false
}

func (h *FeedbackHandler) notifyFeedback(feedback models.Feedback) {
	if h.telegram == nil {
		return
	}

	err := h.telegram.NotifyFeedback(services.FeedbackNotification{
		Reference: feedback.ID.String(),
		Name:      feedback.Name,
		Email:     feedback.Email,
		Category:  feedback.Category,
		Subject:   feedback.Subject,
		Message:   feedback.Message,
	})
	if err != nil {
		log.Printf("[Feedback] Telegram notification failed: %v", err)
	}
}
