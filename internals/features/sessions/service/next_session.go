// file: internals/features/sessions/service/next_session.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	caseModel "maktabi_backend/internals/features/cases/model"
	model "maktabi_backend/internals/features/sessions/model"
)

// StartOfToday returns midnight today in the office timezone. A session
// earlier today still counts as "next" until the day rolls over.
func StartOfToday(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// Recompute refreshes the case's cached next session date: the earliest
// session dated today or later, or NULL when none remain. A full re-scan on
// every session mutation; no read-write locking, so a concurrent session
// write can leave a transiently stale value that self-corrects on the next
// mutation.
func Recompute(db *gorm.DB, caseID uuid.UUID, loc *time.Location) error {
	var next model.CourtSession
	err := db.
		Where("session_case_id = ? AND session_date >= ?", caseID, StartOfToday(loc)).
		Order("session_date ASC").
		First(&next).Error

	var value any
	switch {
	case err == nil:
		value = next.SessionDate
	case errors.Is(err, gorm.ErrRecordNotFound):
		value = nil
	default:
		return err
	}

	return db.Model(&caseModel.Case{}).
		Where("case_id = ?", caseID).
		Update("case_next_session_date", value).Error
}
