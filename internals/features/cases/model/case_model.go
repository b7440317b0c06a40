// file: internals/features/cases/model/case_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Status / priority constants
   ========================= */

const (
	CaseStatusOpen   = "open"
	CaseStatusOnHold = "on_hold"
	CaseStatusClosed = "closed"
)

const (
	CasePriorityLow    = "low"
	CasePriorityNormal = "normal"
	CasePriorityHigh   = "high"
	CasePriorityUrgent = "urgent"
)

/* =========================
   Model: cases
   ========================= */

type Case struct {
	CaseID uuid.UUID `json:"case_id" gorm:"column:case_id;type:uuid;primaryKey"`

	CaseTitle  string `json:"case_title"  gorm:"column:case_title;type:text;not null"`
	CaseNumber string `json:"case_number" gorm:"column:case_number;type:varchar(80);not null;uniqueIndex"`
	CaseType   string `json:"case_type"   gorm:"column:case_type;type:varchar(80);not null"`

	CaseStatus   string `json:"case_status"   gorm:"column:case_status;type:varchar(20);not null;default:open;index"`
	CasePriority string `json:"case_priority" gorm:"column:case_priority;type:varchar(20);not null;default:normal"`

	CaseCourtID  *uuid.UUID `json:"case_court_id,omitempty" gorm:"column:case_court_id;type:uuid;index"`
	CaseClientID uuid.UUID  `json:"case_client_id"          gorm:"column:case_client_id;type:uuid;not null;index"`

	CaseValue       *float64 `json:"case_value,omitempty"       gorm:"column:case_value;type:numeric(14,2)"`
	CaseDescription *string  `json:"case_description,omitempty" gorm:"column:case_description;type:text"`

	// Derived: earliest future session date, NULL when no future session
	// exists. Maintained by the sessions service after every session
	// mutation, never set directly by a form.
	CaseNextSessionDate *time.Time `json:"case_next_session_date,omitempty" gorm:"column:case_next_session_date;type:date"`

	CaseCreatedAt time.Time `json:"case_created_at" gorm:"column:case_created_at;not null;autoCreateTime"`
	CaseUpdatedAt time.Time `json:"case_updated_at" gorm:"column:case_updated_at;not null;autoUpdateTime"`
}

func (Case) TableName() string { return "cases" }

func (m *Case) BeforeCreate(tx *gorm.DB) error {
	if m.CaseID == uuid.Nil {
		m.CaseID = uuid.New()
	}
	return nil
}
