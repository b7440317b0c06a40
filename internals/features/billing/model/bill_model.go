// file: internals/features/billing/model/bill_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BillStatusUnpaid   = "unpaid"
	BillStatusPaid     = "paid"
	BillStatusCanceled = "canceled"
)

type Bill struct {
	BillID uuid.UUID `json:"bill_id" gorm:"column:bill_id;type:uuid;primaryKey"`

	BillNumber   string     `json:"bill_number"            gorm:"column:bill_number;type:varchar(60);not null;uniqueIndex"`
	BillClientID uuid.UUID  `json:"bill_client_id"         gorm:"column:bill_client_id;type:uuid;not null;index"`
	BillCaseID   *uuid.UUID `json:"bill_case_id,omitempty" gorm:"column:bill_case_id;type:uuid;index"`

	BillAmount      float64    `json:"bill_amount"                gorm:"column:bill_amount;type:numeric(14,2);not null"`
	BillStatus      string     `json:"bill_status"                gorm:"column:bill_status;type:varchar(20);not null;default:unpaid;index"`
	BillDueDate     *time.Time `json:"bill_due_date,omitempty"    gorm:"column:bill_due_date;type:date"`
	BillDescription *string    `json:"bill_description,omitempty" gorm:"column:bill_description;type:text"`

	// Online payment (Midtrans Snap); set once a payment link is requested.
	BillPaymentOrderID     *string    `json:"bill_payment_order_id,omitempty"     gorm:"column:bill_payment_order_id;type:varchar(80);index"`
	BillPaymentToken       *string    `json:"bill_payment_token,omitempty"        gorm:"column:bill_payment_token;type:text"`
	BillPaymentRedirectURL *string    `json:"bill_payment_redirect_url,omitempty" gorm:"column:bill_payment_redirect_url;type:text"`
	BillPaidAt             *time.Time `json:"bill_paid_at,omitempty"              gorm:"column:bill_paid_at"`

	BillCreatedAt time.Time `json:"bill_created_at" gorm:"column:bill_created_at;not null;autoCreateTime"`
	BillUpdatedAt time.Time `json:"bill_updated_at" gorm:"column:bill_updated_at;not null;autoUpdateTime"`
}

func (Bill) TableName() string { return "bills" }

func (m *Bill) BeforeCreate(tx *gorm.DB) error {
	if m.BillID == uuid.Nil {
		m.BillID = uuid.New()
	}
	return nil
}
