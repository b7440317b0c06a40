// file: internals/features/cases/model/case_party_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Party roles inside a case.
const (
	PartyRolePlaintiff = "plaintiff"
	PartyRoleDefendant = "defendant"
	PartyRoleWitness   = "witness"
	PartyRoleLawyer    = "lawyer"
	PartyRoleOther     = "other"
)

type CaseParty struct {
	PartyID uuid.UUID `json:"party_id" gorm:"column:party_id;type:uuid;primaryKey"`

	PartyCaseID uuid.UUID `json:"party_case_id" gorm:"column:party_case_id;type:uuid;not null;index"`

	PartyName  string  `json:"party_name"            gorm:"column:party_name;type:varchar(200);not null"`
	PartyRole  string  `json:"party_role"            gorm:"column:party_role;type:varchar(40);not null"`
	PartyPhone *string `json:"party_phone,omitempty" gorm:"column:party_phone;type:varchar(30)"`
	PartyNotes *string `json:"party_notes,omitempty" gorm:"column:party_notes;type:text"`

	PartyCreatedAt time.Time `json:"party_created_at" gorm:"column:party_created_at;not null;autoCreateTime"`
	PartyUpdatedAt time.Time `json:"party_updated_at" gorm:"column:party_updated_at;not null;autoUpdateTime"`
}

func (CaseParty) TableName() string { return "case_parties" }

func (m *CaseParty) BeforeCreate(tx *gorm.DB) error {
	if m.PartyID == uuid.Nil {
		m.PartyID = uuid.New()
	}
	return nil
}
