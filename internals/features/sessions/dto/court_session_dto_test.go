// file: internals/features/sessions/dto/court_session_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

func validForm() SessionForm {
	return SessionForm{
		SessionCaseID:   uuid.New().String(),
		SessionDate:     "2026-09-15",
		SessionTime:     "09:30",
		SessionLocation: "المحكمة العامة",
	}
}

func TestValidateSessionFormOK(t *testing.T) {
	if errs := ValidateSessionForm(validForm(), true); errs != nil {
		t.Fatalf("valid form rejected: %v", errs)
	}
}

func TestValidateSessionFormRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SessionForm)
		field  string
	}{
		{"missing date", func(f *SessionForm) { f.SessionDate = "" }, "session_date"},
		{"blank date", func(f *SessionForm) { f.SessionDate = "   " }, "session_date"},
		{"missing time", func(f *SessionForm) { f.SessionTime = "" }, "session_time"},
		{"missing location", func(f *SessionForm) { f.SessionLocation = "" }, "session_location"},
		{"missing case id", func(f *SessionForm) { f.SessionCaseID = "" }, "session_case_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			errs := ValidateSessionForm(f, true)
			if errs == nil {
				t.Fatal("form accepted, want rejection")
			}
			if len(errs[tc.field]) == 0 {
				t.Fatalf("no error keyed %q: %v", tc.field, errs)
			}
		})
	}
}

func TestValidateSessionFormBadDateFormat(t *testing.T) {
	f := validForm()
	f.SessionDate = "15/09/2026"
	errs := ValidateSessionForm(f, true)
	if errs == nil || len(errs["session_date"]) == 0 {
		t.Fatalf("malformed date accepted: %v", errs)
	}
}

func TestValidateSessionFormCaseIDOnlyOnCreate(t *testing.T) {
	f := validForm()
	f.SessionCaseID = ""
	if errs := ValidateSessionForm(f, false); errs != nil {
		t.Fatalf("update form rejected for missing case id: %v", errs)
	}
}

func TestValidateSessionFormPastDateAccepted(t *testing.T) {
	f := validForm()
	f.SessionDate = "2020-01-01"
	if errs := ValidateSessionForm(f, true); errs != nil {
		t.Fatalf("past date rejected: %v", errs)
	}
}

func TestValidateSessionFormBadCaseID(t *testing.T) {
	f := validForm()
	f.SessionCaseID = "not-a-uuid"
	errs := ValidateSessionForm(f, true)
	if errs == nil || len(errs["session_case_id"]) == 0 {
		t.Fatalf("malformed case id accepted: %v", errs)
	}
}

func TestApplyToNeverChangesOwningCase(t *testing.T) {
	f := validForm()
	m, err := f.ToModel()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	original := m.SessionCaseID

	update := SessionForm{
		SessionCaseID:   uuid.New().String(),
		SessionDate:     "2026-10-01",
		SessionTime:     "11:00",
		SessionLocation: "محكمة الاستئناف",
	}
	if err := update.ApplyTo(m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.SessionCaseID != original {
		t.Fatalf("owning case changed on update: %s -> %s", original, m.SessionCaseID)
	}
	if m.SessionDate.Format("2006-01-02") != "2026-10-01" {
		t.Fatalf("date not applied: %s", m.SessionDate)
	}
}
