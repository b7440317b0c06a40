// file: internals/features/courts/model/court_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Court struct {
	CourtID uuid.UUID `json:"court_id" gorm:"column:court_id;type:uuid;primaryKey"`

	CourtName string  `json:"court_name"           gorm:"column:court_name;type:varchar(200);not null"`
	CourtType *string `json:"court_type,omitempty" gorm:"column:court_type;type:varchar(80)"`
	CourtCity *string `json:"court_city,omitempty" gorm:"column:court_city;type:varchar(120)"`

	CourtCreatedAt time.Time `json:"court_created_at" gorm:"column:court_created_at;not null;autoCreateTime"`
	CourtUpdatedAt time.Time `json:"court_updated_at" gorm:"column:court_updated_at;not null;autoUpdateTime"`
}

func (Court) TableName() string { return "courts" }

func (m *Court) BeforeCreate(tx *gorm.DB) error {
	if m.CourtID == uuid.Nil {
		m.CourtID = uuid.New()
	}
	return nil
}
