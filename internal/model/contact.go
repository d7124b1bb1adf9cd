package model

import "time"

// ContactMessage is a contact form submission. Append-only, no lifecycle.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContactMessage holds the fields for a new contact message.
type NewContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactSubjects lists the subjects offered by the contact form. The
// list is informational; free-form subjects are accepted.
var ContactSubjects = []string{
	"General Inquiry",
	"Donation Question",
	"Technical Support",
	"Feedback",
	"Partnerships",
}
