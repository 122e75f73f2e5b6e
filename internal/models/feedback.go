package models

// FeedbackCategories are the submission types accepted by the support form.
var FeedbackCategories = []string{"Complaint", "Suggestion", "Feedback", "Other"}

// Feedback represents one user-submitted support message. Insert-only; the
// record id doubles as the reference number shown to the submitter.
type Feedback struct {
	BaseModel
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `gorm:"type:text" json:"message"`
	Status   string `gorm:"default:Pending" json:"status"`
}
