// file: internals/features/sessions/dto/court_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "maktabi_backend/internals/features/sessions/model"
)

/* =========================================================
   Form payload (string fields, as submitted)
   ========================================================= */

type SessionForm struct {
	SessionCaseID   string `json:"session_case_id" form:"session_case_id"`
	SessionDate     string `json:"session_date"     form:"session_date"`
	SessionTime     string `json:"session_time"     form:"session_time"`
	SessionType     string `json:"session_type"     form:"session_type"`
	SessionLocation string `json:"session_location" form:"session_location"`
	SessionNotes    string `json:"session_notes"    form:"session_notes"`
}

/* =========================================================
   Pure validation: form → field error map or ok.
   Required: date, time, location. Case id only on create.
   No cross-field checks (a past date is accepted; it simply
   never becomes the next session date).
   ========================================================= */

func ValidateSessionForm(f SessionForm, isCreate bool) map[string][]string {
	errs := map[string][]string{}

	if isCreate {
		caseID := strings.TrimSpace(f.SessionCaseID)
		if caseID == "" {
			errs["session_case_id"] = append(errs["session_case_id"], "هذا الحقل مطلوب")
		} else if _, err := uuid.Parse(caseID); err != nil {
			errs["session_case_id"] = append(errs["session_case_id"], "معرّف القضية غير صالح")
		}
	}

	date := strings.TrimSpace(f.SessionDate)
	if date == "" {
		errs["session_date"] = append(errs["session_date"], "هذا الحقل مطلوب")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		errs["session_date"] = append(errs["session_date"], "صيغة التاريخ غير صالحة")
	}

	if strings.TrimSpace(f.SessionTime) == "" {
		errs["session_time"] = append(errs["session_time"], "هذا الحقل مطلوب")
	}

	if strings.TrimSpace(f.SessionLocation) == "" {
		errs["session_location"] = append(errs["session_location"], "هذا الحقل مطلوب")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

/* =========================================================
   Form → model
   ========================================================= */

func (f *SessionForm) ToModel() (*model.CourtSession, error) {
	caseID, err := uuid.Parse(strings.TrimSpace(f.SessionCaseID))
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(f.SessionDate))
	if err != nil {
		return nil, err
	}

	m := &model.CourtSession{
		SessionCaseID:   caseID,
		SessionDate:     date,
		SessionTime:     strings.TrimSpace(f.SessionTime),
		SessionLocation: strings.TrimSpace(f.SessionLocation),
	}
	if t := strings.TrimSpace(f.SessionType); t != "" {
		m.SessionType = &t
	}
	if n := strings.TrimSpace(f.SessionNotes); n != "" {
		m.SessionNotes = &n
	}
	return m, nil
}

// ApplyTo copies the non-empty form fields onto an existing session.
// The owning case is never changed on update.
func (f *SessionForm) ApplyTo(m *model.CourtSession) error {
	if d := strings.TrimSpace(f.SessionDate); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			return err
		}
		m.SessionDate = date
	}
	if t := strings.TrimSpace(f.SessionTime); t != "" {
		m.SessionTime = t
	}
	if l := strings.TrimSpace(f.SessionLocation); l != "" {
		m.SessionLocation = l
	}
	if t := strings.TrimSpace(f.SessionType); t != "" {
		m.SessionType = &t
	}
	if n := strings.TrimSpace(f.SessionNotes); n != "" {
		m.SessionNotes = &n
	}
	return nil
}
