package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService handles sending operations notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// AppointmentNotification contains appointment data for Telegram notification.
type AppointmentNotification struct {
	Code          string
	BankName      string
	BranchName    string
	Date          string
	TimeSlot      string
	Service       string
	CustomerName  string
	CustomerEmail string
}

// NotifyNewAppointment sends notification about a new booking to admin chat.
func (s *TelegramService) NotifyNewAppointment(appt AppointmentNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>📅 NEW APPOINTMENT</b>
<b>📋 Reference:</b> %s
<b>🏦 Branch:</b> %s, %s
<b>🗓 Date:</b> %s
<b>⏰ Slot:</b> %s
<b>🛠 Service:</b> %s
<b>👤 Customer:</b> %s (%s)
━━━━━━━━━━━━━━━━━━`,
		appt.Code,
		appt.BankName,
		appt.BranchName,
		appt.Date,
		appt.TimeSlot,
		appt.Service,
		appt.CustomerName,
		appt.CustomerEmail,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// FeedbackNotification contains feedback data for Telegram notification.
type FeedbackNotification struct {
	Reference string
	Name      string
	Email     string
	Category  string
	Subject   string
	Message   string
}

// NotifyFeedback sends notification about a new support submission.
func (s *TelegramService) NotifyFeedback(fb FeedbackNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	text := fb.Message
	if len(text) > 500 {
		text = text[:500] + "…"
	}

	message := fmt.Sprintf(`<b>✉️ NEW %s</b>
<b>📋 Reference:</b> %s
<b>👤 From:</b> %s (%s)
<b>📝 Subject:</b> %s
%s
━━━━━━━━━━━━━━━━━━`,
		strings.ToUpper(fb.Category),
		fb.Reference,
		fb.Name,
		fb.Email,
		fb.Subject,
		text,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
