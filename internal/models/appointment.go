package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Appointment represents one scheduled customer visit to one bank branch
// for one service. Cancelled appointments are kept for history and excluded
// from active views.
type Appointment struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User   *User     `json:"user,omitempty"`

	// Human-readable reference composed from an id fragment, bank name and
	// time slot with whitespace stripped.
	Code string `gorm:"index" json:"code"`

	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	BranchAddress string `json:"branch_address"`

	// Calendar day of the visit; the clock time lives in TimeSlot.
	Date time.Time `gorm:"type:date;index" json:"date"`

	// Display label of the half-hour window, e.g. "10:00 AM - 10:30 AM".
	TimeSlot string `json:"time_slot"`

	ServiceCategory string `json:"service_category"`
	Service         string `json:"service"`

	// Documents the customer confirmed bringing, from the service checklist.
	ConfirmedDocuments pq.StringArray `gorm:"type:text[]" json:"confirmed_documents"`

	// Soft-delete flag. A cancelled appointment is immutable and never
	// hard-deleted.
	Cancelled bool `gorm:"index" json:"cancelled"`
}

// DocumentChecklist lists the documents required for one service category.
// Seeded at migration and served read-only.
type DocumentChecklist struct {
	BaseModel
	ServiceCategory string         `gorm:"uniqueIndex" json:"service_category"`
	Documents       pq.StringArray `gorm:"type:text[]" json:"documents"`
}
