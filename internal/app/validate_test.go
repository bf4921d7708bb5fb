package app

import (
	"strings"
	"testing"
	"time"

	"lead_crm_client/internal/domain/lead"
	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/domain/user"
)

func validDraft() lead.Draft {
	return lead.Draft{
		FullName:           "Nimal Perera",
		DestinationCountry: "Canada",
		Branch:             "Colombo",
	}
}

func TestLeadDraftWhatsAppNumber(t *testing.T) {
	cases := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{"ten digits passes", "0712345678", false},
		{"too short rejected", "12345", true},
		{"letter rejected", "071234567a", true},
		{"empty allowed", "", false},
		{"whitespace trimmed then valid", "  0712345678  ", false},
		{"eleven digits rejected", "07123456789", true},
	}

	v := NewValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.WhatsAppNo = tc.number
			err := v.LeadDraft(&d)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("LeadDraft accepted whatsapp_no %q", tc.number)
				}
				if !IsValidation(err) {
					t.Fatalf("expected a validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LeadDraft rejected whatsapp_no %q: %v", tc.number, err)
			}
		})
	}
}

func TestLeadDraftRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*lead.Draft)
	}{
		{"missing full name", func(d *lead.Draft) { d.FullName = "" }},
		{"whitespace full name", func(d *lead.Draft) { d.FullName = "   " }},
		{"missing country", func(d *lead.Draft) { d.DestinationCountry = "" }},
		{"missing branch", func(d *lead.Draft) { d.Branch = "\t" }},
	}

	v := NewValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			err := v.LeadDraft(&d)
			if err == nil {
				t.Fatal("LeadDraft accepted a draft with a missing required field")
			}
			if !strings.Contains(err.Error(), "required") {
				t.Fatalf("expected the combined required-fields message, got %q", err)
			}
		})
	}
}

func TestLeadDraftGPARange(t *testing.T) {
	v := NewValidator()

	tooHigh := 4.5
	d := validDraft()
	d.GPA = &tooHigh
	if err := v.LeadDraft(&d); err == nil {
		t.Fatal("LeadDraft accepted gpa=4.5")
	}

	ok := 3.75
	d = validDraft()
	d.GPA = &ok
	if err := v.LeadDraft(&d); err != nil {
		t.Fatalf("LeadDraft rejected gpa=3.75: %v", err)
	}
}

func TestLeadDraftAgeRange(t *testing.T) {
	v := NewValidator()

	tooOld := 101
	d := validDraft()
	d.Age = &tooOld
	if err := v.LeadDraft(&d); err == nil {
		t.Fatal("LeadDraft accepted age=101")
	}
}

func TestLeadDraftNormalization(t *testing.T) {
	v := NewValidator()

	d := validDraft()
	d.Branch = "  Kandy  "
	if err := v.LeadDraft(&d); err != nil {
		t.Fatalf("LeadDraft rejected a valid draft: %v", err)
	}
	if d.Branch != "Kandy" {
		t.Errorf("branch not trimmed: %q", d.Branch)
	}
	if d.Status != lead.StatusNew {
		t.Errorf("status not defaulted to %q: %q", lead.StatusNew, d.Status)
	}
}

func TestLeadDraftInquiryDate(t *testing.T) {
	v := NewValidator()

	d := validDraft()
	d.InquiryDate = "not-a-date"
	if err := v.LeadDraft(&d); err == nil {
		t.Fatal("LeadDraft accepted an unparseable inquiry date")
	}

	// A local wall-clock input round-trips to the same instant once
	// normalized to UTC RFC3339.
	d = validDraft()
	d.InquiryDate = "2024-03-01T10:00"
	if err := v.LeadDraft(&d); err != nil {
		t.Fatalf("LeadDraft rejected a parseable inquiry date: %v", err)
	}
	got, err := time.Parse(time.RFC3339, d.InquiryDate)
	if err != nil {
		t.Fatalf("normalized inquiry date %q is not RFC3339: %v", d.InquiryDate, err)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("normalized instant = %s, want %s", got, want)
	}
}

func TestLeadPatchChecksOnlyPresentFields(t *testing.T) {
	v := NewValidator()

	// Absent fields are not required in a partial update.
	status := lead.StatusClosed
	p := lead.Patch{Status: &status}
	if err := v.LeadPatch(&p); err != nil {
		t.Fatalf("LeadPatch rejected a status-only update: %v", err)
	}

	// A present-but-empty required field is rejected.
	empty := "  "
	p = lead.Patch{FullName: &empty}
	if err := v.LeadPatch(&p); err == nil {
		t.Fatal("LeadPatch accepted an empty full_name")
	}

	bad := "12345"
	p = lead.Patch{WhatsAppNo: &bad}
	if err := v.LeadPatch(&p); err == nil {
		t.Fatal("LeadPatch accepted a malformed whatsapp_no")
	}
}

func TestNoteAndTaskAndActivityValidation(t *testing.T) {
	v := NewValidator()

	n := lead.NoteDraft{Body: "   "}
	if err := v.NoteDraft(&n); err == nil {
		t.Fatal("NoteDraft accepted a blank body")
	}

	task := lead.TaskDraft{Title: " ", Status: lead.TaskOpen}
	if err := v.TaskDraft(&task); err == nil {
		t.Fatal("TaskDraft accepted a blank title")
	}
	task = lead.TaskDraft{Title: "Call back", Status: "paused"}
	if err := v.TaskDraft(&task); err == nil {
		t.Fatal("TaskDraft accepted an unknown status")
	}

	act := lead.ActivityDraft{Kind: "carrier_pigeon"}
	if err := v.ActivityDraft(&act); err == nil {
		t.Fatal("ActivityDraft accepted an unknown kind")
	}
	upd := lead.ActivityUpdate{Summary: ""}
	if err := v.ActivityUpdate(&upd); err == nil {
		t.Fatal("ActivityUpdate accepted a blank summary")
	}
}

func TestCredentialsAndRegistrationValidation(t *testing.T) {
	v := NewValidator()

	if err := v.Credentials(session.Credentials{Email: "not-an-email", Password: "x"}); err == nil {
		t.Fatal("Credentials accepted a malformed email")
	}
	if err := v.Credentials(session.Credentials{Email: "a@b.lk", Password: "secret"}); err != nil {
		t.Fatalf("Credentials rejected a valid login: %v", err)
	}

	reg := user.Registration{Name: "A", Email: "a@b.lk", Role: "boss", Password: "pw"}
	if err := v.Registration(reg); err == nil {
		t.Fatal("Registration accepted an unknown role")
	}
	reg.Role = user.RoleAgent
	if err := v.Registration(reg); err != nil {
		t.Fatalf("Registration rejected a valid payload: %v", err)
	}
}
