// file: internals/features/cases/model/case_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseEvent struct {
	EventID uuid.UUID `json:"event_id" gorm:"column:event_id;type:uuid;primaryKey"`

	EventCaseID uuid.UUID `json:"event_case_id" gorm:"column:event_case_id;type:uuid;not null;index"`

	EventTitle string     `json:"event_title"          gorm:"column:event_title;type:varchar(200);not null"`
	EventType  *string    `json:"event_type,omitempty" gorm:"column:event_type;type:varchar(80)"`
	EventDate  *time.Time `json:"event_date,omitempty" gorm:"column:event_date;type:date"`
	EventNotes *string    `json:"event_notes,omitempty" gorm:"column:event_notes;type:text"`

	EventCreatedAt time.Time `json:"event_created_at" gorm:"column:event_created_at;not null;autoCreateTime"`
	EventUpdatedAt time.Time `json:"event_updated_at" gorm:"column:event_updated_at;not null;autoUpdateTime"`
}

func (CaseEvent) TableName() string { return "case_events" }

func (m *CaseEvent) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
