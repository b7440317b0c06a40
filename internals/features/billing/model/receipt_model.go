// file: internals/features/billing/model/receipt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReceiptMethodCash     = "cash"
	ReceiptMethodTransfer = "transfer"
	ReceiptMethodCheque   = "cheque"
	ReceiptMethodOnline   = "online"
)

type Receipt struct {
	ReceiptID uuid.UUID `json:"receipt_id" gorm:"column:receipt_id;type:uuid;primaryKey"`

	ReceiptNumber   string     `json:"receipt_number"            gorm:"column:receipt_number;type:varchar(60);not null;uniqueIndex"`
	ReceiptClientID uuid.UUID  `json:"receipt_client_id"         gorm:"column:receipt_client_id;type:uuid;not null;index"`
	ReceiptCaseID   *uuid.UUID `json:"receipt_case_id,omitempty" gorm:"column:receipt_case_id;type:uuid;index"`
	ReceiptBillID   *uuid.UUID `json:"receipt_bill_id,omitempty" gorm:"column:receipt_bill_id;type:uuid;index"`

	ReceiptAmount float64   `json:"receipt_amount" gorm:"column:receipt_amount;type:numeric(14,2);not null"`
	ReceiptMethod string    `json:"receipt_method" gorm:"column:receipt_method;type:varchar(20);not null;default:cash"`
	ReceiptDate   time.Time `json:"receipt_date"   gorm:"column:receipt_date;type:date;not null"`

	// Uploaded scan in the receipts bucket.
	ReceiptFilePath *string `json:"receipt_file_path,omitempty" gorm:"column:receipt_file_path;type:text"`
	ReceiptFileURL  *string `json:"receipt_file_url,omitempty"  gorm:"column:receipt_file_url;type:text"`

	ReceiptNotes *string `json:"receipt_notes,omitempty" gorm:"column:receipt_notes;type:text"`

	ReceiptCreatedAt time.Time `json:"receipt_created_at" gorm:"column:receipt_created_at;not null;autoCreateTime"`
	ReceiptUpdatedAt time.Time `json:"receipt_updated_at" gorm:"column:receipt_updated_at;not null;autoUpdateTime"`
}

func (Receipt) TableName() string { return "receipts" }

func (m *Receipt) BeforeCreate(tx *gorm.DB) error {
	if m.ReceiptID == uuid.Nil {
		m.ReceiptID = uuid.New()
	}
	return nil
}
