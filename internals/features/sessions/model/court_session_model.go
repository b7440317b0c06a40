// file: internals/features/sessions/model/court_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourtSession struct {
	SessionID uuid.UUID `json:"session_id" gorm:"column:session_id;type:uuid;primaryKey"`

	SessionCaseID uuid.UUID `json:"session_case_id" gorm:"column:session_case_id;type:uuid;not null;index:idx_session_case_date"`

	SessionDate time.Time `json:"session_date" gorm:"column:session_date;type:date;not null;index:idx_session_case_date"`
	SessionTime string    `json:"session_time" gorm:"column:session_time;type:varchar(8);not null"`

	SessionType     *string `json:"session_type,omitempty" gorm:"column:session_type;type:varchar(80)"`
	SessionLocation string  `json:"session_location"       gorm:"column:session_location;type:varchar(200);not null"`
	SessionNotes    *string `json:"session_notes,omitempty" gorm:"column:session_notes;type:text"`

	SessionCreatedAt time.Time `json:"session_created_at" gorm:"column:session_created_at;not null;autoCreateTime"`
	SessionUpdatedAt time.Time `json:"session_updated_at" gorm:"column:session_updated_at;not null;autoUpdateTime"`
}

func (CourtSession) TableName() string { return "court_sessions" }

func (m *CourtSession) BeforeCreate(tx *gorm.DB) error {
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	return nil
}
