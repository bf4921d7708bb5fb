package lead

import "time"

// Lead is a sales/inquiry prospect record, the central entity of the CRM.
// Field names mirror the server's JSON contract 1:1.
type Lead struct {
	ID                 string     `json:"id"`
	InqID              string     `json:"inq_id"`
	FullName           string     `json:"full_name"`
	DestinationCountry *string    `json:"destination_country"`
	BranchID           *string    `json:"branch_id"`
	BranchName         string     `json:"branch_name"`
	FieldOfStudy       *string    `json:"field_of_study"`
	Age                *int       `json:"age"`
	VisaCategory       *string    `json:"visa_category"`
	Principal          *string    `json:"principal"`
	GPA                *float64   `json:"gpa"`
	Team               *string    `json:"team"`
	Status             *string    `json:"status"`
	WhatsAppNo         string     `json:"whatsapp_no"`
	InquiryDate        *time.Time `json:"inquiry_date"`
	AllocatedUserID    *string    `json:"allocated_user_id"`
	GroupName          *string    `json:"group_name"`
	Remarks            *string    `json:"remarks"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Conventional lead statuses. The field itself is free-form on the wire.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// Draft is the client-side submission payload for creating a lead. It is
// validated and normalized (see app.Validator) before it is ever transmitted.
type Draft struct {
	FullName           string   `json:"full_name" validate:"required"`
	DestinationCountry string   `json:"destination_country" validate:"required"`
	Branch             string   `json:"branch" validate:"required"`
	Status             string   `json:"status,omitempty"`
	FieldOfStudy       string   `json:"field_of_study,omitempty"`
	Age                *int     `json:"age,omitempty" validate:"omitempty,gte=0,lte=100"`
	VisaCategory       string   `json:"visa_category,omitempty"`
	Principal          string   `json:"principal,omitempty"`
	GPA                *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	Team               string   `json:"team,omitempty"`
	WhatsAppNo         string   `json:"whatsapp_no,omitempty" validate:"omitempty,tendigits"`
	InquiryDate        string   `json:"inquiry_date,omitempty"`
	AllocatedUserID    string   `json:"allocated_user_id,omitempty"`
	GroupName          string   `json:"group_name,omitempty"`
	Remarks            string   `json:"remarks,omitempty"`
}

// Patch carries a partial update: only non-nil fields are transmitted, and the
// server changes only the fields present in the request body.
type Patch struct {
	FullName           *string  `json:"full_name,omitempty"`
	DestinationCountry *string  `json:"destination_country,omitempty"`
	Branch             *string  `json:"branch,omitempty"`
	Status             *string  `json:"status,omitempty"`
	FieldOfStudy       *string  `json:"field_of_study,omitempty"`
	Age                *int     `json:"age,omitempty"`
	VisaCategory       *string  `json:"visa_category,omitempty"`
	Principal          *string  `json:"principal,omitempty"`
	GPA                *float64 `json:"gpa,omitempty"`
	Team               *string  `json:"team,omitempty"`
	WhatsAppNo         *string  `json:"whatsapp_no,omitempty"`
	InquiryDate        *string  `json:"inquiry_date,omitempty"`
	AllocatedUserID    *string  `json:"allocated_user_id,omitempty"`
	GroupName          *string  `json:"group_name,omitempty"`
	Remarks            *string  `json:"remarks,omitempty"`
}

// Page is the server's list envelope for GET /leads.
type Page struct {
	Leads  []Lead `json:"leads"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
