// file: internals/features/activity/service/activity_logger.go
package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/activity/model"
)

// Logger writes the audit trail. Logging is best-effort by contract: a failed
// insert is written to the diagnostic log and never fails the mutation that
// triggered it.
type Logger struct {
	DB *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{DB: db}
}

type Entry struct {
	UserID      uuid.UUID
	UserName    string
	EntityType  string
	EntityID    uuid.UUID
	Action      string
	Description string
	Details     any // optional, stored as JSONB
}

func (l *Logger) Log(e Entry) {
	row := model.Activity{
		ActivityUserName:    e.UserName,
		ActivityEntityType:  e.EntityType,
		ActivityEntityID:    e.EntityID,
		ActivityAction:      e.Action,
		ActivityDescription: e.Description,
	}
	if e.UserID != uuid.Nil {
		uid := e.UserID
		row.ActivityUserID = &uid
	}
	if e.Details != nil {
		if b, err := json.Marshal(e.Details); err == nil {
			row.ActivityDetails = datatypes.JSON(b)
		} else {
			log.Printf("[ERROR] activity details marshal: %v", err)
		}
	}

	if err := l.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] activity log (%s %s %s): %v",
			e.Action, e.EntityType, e.EntityID, err)
	}
}
