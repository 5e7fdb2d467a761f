package models

import "time"

// ContactField names one of the four inputs of the contact form
type ContactField string

const (
	FieldName    ContactField = "name"
	FieldEmail   ContactField = "email"
	FieldCompany ContactField = "company"
	FieldMessage ContactField = "message"
)

// ContactFields lists the form inputs in display order
var ContactFields = []ContactField{FieldName, FieldEmail, FieldCompany, FieldMessage}

// ContactRequest represents a contact form submission
// SECURITY: Max length validation to prevent resource exhaustion attacks
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=320"`
	Company string `json:"company" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=10000"`
}

// Get returns the value of a single field
func (r ContactRequest) Get(field ContactField) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldCompany:
		return r.Company
	case FieldMessage:
		return r.Message
	default:
		return ""
	}
}

// With returns a copy of r with field set to value. Unknown fields leave r unchanged.
func (r ContactRequest) With(field ContactField, value string) ContactRequest {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldCompany:
		r.Company = value
	case FieldMessage:
		r.Message = value
	}
	return r
}

// MissingFields returns the fields that are empty, in display order.
// Presence is all that is checked, like a required form input.
func (r ContactRequest) MissingFields() []ContactField {
	var missing []ContactField
	for _, field := range ContactFields {
		if r.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsComplete reports whether every field is filled in
func (r ContactRequest) IsComplete() bool {
	return len(r.MissingFields()) == 0
}

// ContactSubmission is a stored contact request
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Request returns the four submitted fields
func (s *ContactSubmission) Request() ContactRequest {
	return ContactRequest{
		Name:    s.Name,
		Email:   s.Email,
		Company: s.Company,
		Message: s.Message,
	}
}

const (
	DefaultContactListLimit = 1000
	MaxContactListLimit     = 1000
)

// ContactListOptions carries pagination parameters for listing submissions
type ContactListOptions struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Normalize applies defaults and bounds
func (o ContactListOptions) Normalize() ContactListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultContactListLimit
	}
	if o.Limit > MaxContactListLimit {
		o.Limit = MaxContactListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// APIRootResponse is returned by the API banner endpoint
type APIRootResponse struct {
	Message string `json:"message"`
}
