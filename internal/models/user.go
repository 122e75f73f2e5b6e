package models

import (
	"time"

	"github.com/lib/pq"
)

// Roles assignable to a user at registration. The role never changes after
// the account is created.
const (
	RoleCustomer  = "customer"
	RoleBank      = "bank"
	RoleDeveloper = "developer"
)

// User represents an authenticated principal: a customer, a bank employee
// or an internal developer account.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Username     string     `gorm:"uniqueIndex" json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth"`
	Initials     string     `json:"initials"`
	Role         string     `gorm:"index;default:customer" json:"role"`
	PasswordHash string     `json:"-"`
	IsVerified   bool       `json:"is_verified"`

	// Bank-employee fields, empty for customers.
	BankName    string `json:"bank_name,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	Designation string `json:"designation,omitempty"`
	IFSCCode    string `json:"ifsc_code,omitempty"`

	// Index of appointments owned by this user. The appointment rows are the
	// source of truth; this list is a back-reference kept by the create flow.
	AppointmentIDs pq.StringArray `gorm:"type:text[]" json:"appointment_ids"`

	// Opaque token identifying the most recent sign-in. Rotated on every
	// login; an open session whose token no longer matches is signed out.
	SessionMarker string `json:"-"`

	// Last successful credential re-verification, gating sensitive changes.
	LastReauthAt *time.Time `json:"-"`

	Appointments []Appointment `json:"appointments,omitempty"`
}

// SMSVerification keeps track of OTP codes sent to users.
type SMSVerification struct {
	BaseModel
	Phone     string     `gorm:"index" json:"phone"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}
