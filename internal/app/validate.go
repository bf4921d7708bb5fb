// internal/app/validate.go
package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"lead_crm_client/internal/domain/lead"
	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/domain/user"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a pre-submission failure. It blocks the write before
// any network call is made and is rendered inline next to the offending
// field (Field is empty for form-level errors).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var tenDigits = regexp.MustCompile(`^\d{10}$`)

// Accepted inquiry-date inputs. Inputs without a zone are interpreted in the
// process local zone and transmitted as UTC RFC3339.
var inquiryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Validator is the pre-write gate: every create/update payload passes
// through it before a resource accessor is allowed to transmit it.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// WhatsApp numbers are exactly ten digits when present.
	_ = v.RegisterValidation("tendigits", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// LeadDraft trims and checks a lead submission, then normalizes it in place:
// status defaults to "New", branch is trimmed, and the inquiry date becomes
// a UTC RFC3339 instant.
func (va *Validator) LeadDraft(d *lead.Draft) error {
	d.FullName = strings.TrimSpace(d.FullName)
	d.DestinationCountry = strings.TrimSpace(d.DestinationCountry)
	d.Branch = strings.TrimSpace(d.Branch)
	d.WhatsAppNo = strings.TrimSpace(d.WhatsAppNo)

	if d.FullName == "" || d.DestinationCountry == "" || d.Branch == "" {
		return &ValidationError{Message: "full name, destination country and branch are required"}
	}
	if d.WhatsAppNo != "" && !tenDigits.MatchString(d.WhatsAppNo) {
		return &ValidationError{Field: "whatsapp_no", Message: "must be a 10-digit number"}
	}
	if d.GPA != nil && (*d.GPA < 0 || *d.GPA > 4) {
		return &ValidationError{Field: "gpa", Message: "must be between 0.00 and 4.00"}
	}
	if d.Age != nil && (*d.Age < 0 || *d.Age > 100) {
		return &ValidationError{Field: "age", Message: "must be between 0 and 100"}
	}
	if err := va.v.Struct(d); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if d.InquiryDate != "" {
		normalized, err := NormalizeInquiryDate(d.InquiryDate)
		if err != nil {
			return &ValidationError{Field: "inquiry_date", Message: "is not a valid date"}
		}
		d.InquiryDate = normalized
	}
	if d.Status == "" {
		d.Status = lead.StatusNew
	}
	return nil
}

// LeadPatch applies the same trim-and-check rules to the fields present in a
// partial update. A field set to an empty string that the full draft
// requires is rejected rather than transmitted.
func (va *Validator) LeadPatch(p *lead.Patch) error {
	for field, val := range map[string]**string{
		"full_name":           &p.FullName,
		"destination_country": &p.DestinationCountry,
		"branch":              &p.Branch,
	} {
		if *val == nil {
			continue
		}
		trimmed := strings.TrimSpace(**val)
		if trimmed == "" {
			return &ValidationError{Field: field, Message: "must not be empty"}
		}
		**val = trimmed
	}

	if p.WhatsAppNo != nil {
		trimmed := strings.TrimSpace(*p.WhatsAppNo)
		if trimmed != "" && !tenDigits.MatchString(trimmed) {
			return &ValidationError{Field: "whatsapp_no", Message: "must be a 10-digit number"}
		}
		*p.WhatsAppNo = trimmed
	}
	if p.GPA != nil && (*p.GPA < 0 || *p.GPA > 4) {
		return &ValidationError{Field: "gpa", Message: "must be between 0.00 and 4.00"}
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 100) {
		return &ValidationError{Field: "age", Message: "must be between 0 and 100"}
	}
	if p.InquiryDate != nil {
		normalized, err := NormalizeInquiryDate(*p.InquiryDate)
		if err != nil {
			return &ValidationError{Field: "inquiry_date", Message: "is not a valid date"}
		}
		*p.InquiryDate = normalized
	}
	return nil
}

// NoteDraft requires a non-empty body after trimming.
func (va *Validator) NoteDraft(d *lead.NoteDraft) error {
	d.Body = strings.TrimSpace(d.Body)
	if d.Body == "" {
		return &ValidationError{Field: "body", Message: "must not be empty"}
	}
	return nil
}

// ActivityDraft requires a known kind; the summary is optional on creation.
func (va *Validator) ActivityDraft(d *lead.ActivityDraft) error {
	if !d.Kind.Valid() {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown activity kind %q", d.Kind)}
	}
	d.Summary = strings.TrimSpace(d.Summary)
	return nil
}

// ActivityUpdate requires a non-empty summary; the summary is the only
// editable field of an activity.
func (va *Validator) ActivityUpdate(u *lead.ActivityUpdate) error {
	u.Summary = strings.TrimSpace(u.Summary)
	if u.Summary == "" {
		return &ValidationError{Field: "summary", Message: "must not be empty"}
	}
	return nil
}

// TaskDraft requires a non-empty title and a known status.
func (va *Validator) TaskDraft(d *lead.TaskDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if !d.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown task status %q", d.Status)}
	}
	return nil
}

// TaskPatch checks only the fields present in a partial task update.
func (va *Validator) TaskPatch(p *lead.TaskPatch) error {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if trimmed == "" {
			return &ValidationError{Field: "title", Message: "must not be empty"}
		}
		*p.Title = trimmed
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown task status %q", *p.Status)}
	}
	return nil
}

// Credentials checks a login submission.
func (va *Validator) Credentials(c session.Credentials) error {
	if err := va.v.Struct(c); err != nil {
		return &ValidationError{Message: "email and password are required"}
	}
	return nil
}

// Registration checks an admin user-creation submission.
func (va *Validator) Registration(r user.Registration) error {
	if err := va.v.Struct(r); err != nil {
		return &ValidationError{Message: "name, a valid email, role and password are required"}
	}
	if !r.Role.Valid() {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", r.Role)}
	}
	return nil
}

// NormalizeInquiryDate parses a user-entered date and returns it as a UTC
// RFC3339 instant. Inputs without an explicit zone are read in local time.
func NormalizeInquiryDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	for _, layout := range inquiryDateLayouts[1:] {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", input)
}
