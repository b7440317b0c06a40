// file: internals/features/activity/model/activity_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Action / entity constants
   ========================= */

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPay    = "pay"
)

const (
	EntityCase     = "case"
	EntityClient   = "client"
	EntityCourt    = "court"
	EntitySession  = "court_session"
	EntityParty    = "case_party"
	EntityDocument = "case_document"
	EntityEvent    = "case_event"
	EntityBill     = "bill"
	EntityReceipt  = "receipt"
)

/* =========================
   Model: activities (append-only)
   ========================= */

// Activity rows are written as a side effect of every mutation and are never
// updated or deleted by application code.
type Activity struct {
	ActivityID uuid.UUID `json:"activity_id" gorm:"column:activity_id;type:uuid;primaryKey"`

	ActivityUserID   *uuid.UUID `json:"activity_user_id,omitempty" gorm:"column:activity_user_id;type:uuid;index"`
	ActivityUserName string     `json:"activity_user_name"         gorm:"column:activity_user_name;type:varchar(120)"`

	ActivityEntityType string    `json:"activity_entity_type" gorm:"column:activity_entity_type;type:varchar(40);not null;index:idx_activity_entity"`
	ActivityEntityID   uuid.UUID `json:"activity_entity_id"   gorm:"column:activity_entity_id;type:uuid;not null;index:idx_activity_entity"`
	ActivityAction     string    `json:"activity_action"      gorm:"column:activity_action;type:varchar(20);not null"`

	ActivityDescription string         `json:"activity_description"       gorm:"column:activity_description;type:text;not null"`
	ActivityDetails     datatypes.JSON `json:"activity_details,omitempty" gorm:"column:activity_details;type:jsonb"`

	ActivityCreatedAt time.Time `json:"activity_created_at" gorm:"column:activity_created_at;not null;autoCreateTime"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ActivityID == uuid.Nil {
		a.ActivityID = uuid.New()
	}
	return nil
}
