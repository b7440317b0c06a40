// file: internals/features/clients/model/client_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClientTypeIndividual = "individual"
	ClientTypeCompany    = "company"
)

/* =========================
   Model: clients
   ========================= */

type Client struct {
	ClientID uuid.UUID `json:"client_id" gorm:"column:client_id;type:uuid;primaryKey"`

	ClientType      string `json:"client_type"       gorm:"column:client_type;type:varchar(20);not null;default:individual"`
	ClientFirstName string `json:"client_first_name" gorm:"column:client_first_name;type:varchar(120);not null"`
	ClientLastName  string `json:"client_last_name"  gorm:"column:client_last_name;type:varchar(120)"`

	ClientCompanyName *string `json:"client_company_name,omitempty" gorm:"column:client_company_name;type:varchar(200)"`
	ClientNationalID  *string `json:"client_national_id,omitempty"  gorm:"column:client_national_id;type:varchar(40)"`
	ClientPhone       *string `json:"client_phone,omitempty"        gorm:"column:client_phone;type:varchar(30);index"`
	ClientEmail       *string `json:"client_email,omitempty"        gorm:"column:client_email;type:varchar(160)"`
	ClientAddress     *string `json:"client_address,omitempty"      gorm:"column:client_address;type:text"`
	ClientPhotoURL    *string `json:"client_photo_url,omitempty"    gorm:"column:client_photo_url;type:text"`
	ClientNotes       *string `json:"client_notes,omitempty"        gorm:"column:client_notes;type:text"`

	ClientCreatedAt time.Time `json:"client_created_at" gorm:"column:client_created_at;not null;autoCreateTime"`
	ClientUpdatedAt time.Time `json:"client_updated_at" gorm:"column:client_updated_at;not null;autoUpdateTime"`
}

func (Client) TableName() string { return "clients" }

func (m *Client) BeforeCreate(tx *gorm.DB) error {
	if m.ClientID == uuid.Nil {
		m.ClientID = uuid.New()
	}
	return nil
}

// FullName joins first/last for activity descriptions.
func (m *Client) FullName() string {
	return strings.TrimSpace(m.ClientFirstName + " " + m.ClientLastName)
}
