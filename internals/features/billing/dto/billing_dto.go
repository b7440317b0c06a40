// file: internals/features/billing/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "maktabi_backend/internals/features/billing/model"
)

/* =========================================================
   Bills
   ========================================================= */

type CreateBillRequest struct {
	BillNumber   string     `json:"bill_number"    validate:"required,max=60"`
	BillClientID uuid.UUID  `json:"bill_client_id" validate:"required"`
	BillCaseID   *uuid.UUID `json:"bill_case_id"`

	BillAmount      float64 `json:"bill_amount"      validate:"required,gt=0"`
	BillDueDate     *string `json:"bill_due_date"    validate:"omitempty,datetime=2006-01-02"`
	BillDescription *string `json:"bill_description"`
}

func (r *CreateBillRequest) ToModel() (*model.Bill, error) {
	m := &model.Bill{
		BillNumber:      r.BillNumber,
		BillClientID:    r.BillClientID,
		BillCaseID:      r.BillCaseID,
		BillAmount:      r.BillAmount,
		BillStatus:      model.BillStatusUnpaid,
		BillDescription: r.BillDescription,
	}
	if r.BillDueDate != nil && *r.BillDueDate != "" {
		t, err := time.Parse("2006-01-02", *r.BillDueDate)
		if err != nil {
			return nil, err
		}
		m.BillDueDate = &t
	}
	return m, nil
}

type UpdateBillRequest struct {
	BillNumber      *string    `json:"bill_number"    validate:"omitempty,min=1,max=60"`
	BillCaseID      *uuid.UUID `json:"bill_case_id"`
	BillAmount      *float64   `json:"bill_amount"    validate:"omitempty,gt=0"`
	BillStatus      *string    `json:"bill_status"    validate:"omitempty,oneof=unpaid paid canceled"`
	BillDueDate     *string    `json:"bill_due_date"  validate:"omitempty,datetime=2006-01-02"`
	BillDescription *string    `json:"bill_description"`
}

func (r *UpdateBillRequest) ApplyTo(m *model.Bill) error {
	if r.BillNumber != nil {
		m.BillNumber = *r.BillNumber
	}
	if r.BillCaseID != nil {
		m.BillCaseID = r.BillCaseID
	}
	if r.BillAmount != nil {
		m.BillAmount = *r.BillAmount
	}
	if r.BillStatus != nil {
		m.BillStatus = *r.BillStatus
	}
	if r.BillDueDate != nil {
		if *r.BillDueDate == "" {
			m.BillDueDate = nil
		} else {
			t, err := time.Parse("2006-01-02", *r.BillDueDate)
			if err != nil {
				return err
			}
			m.BillDueDate = &t
		}
	}
	if r.BillDescription != nil {
		m.BillDescription = r.BillDescription
	}
	return nil
}

/* =========================================================
   Receipts
   ========================================================= */

type CreateReceiptRequest struct {
	ReceiptNumber   string     `json:"receipt_number"    validate:"required,max=60"`
	ReceiptClientID uuid.UUID  `json:"receipt_client_id" validate:"required"`
	ReceiptCaseID   *uuid.UUID `json:"receipt_case_id"`
	ReceiptBillID   *uuid.UUID `json:"receipt_bill_id"`

	ReceiptAmount float64 `json:"receipt_amount" validate:"required,gt=0"`
	ReceiptMethod string  `json:"receipt_method" validate:"omitempty,oneof=cash transfer cheque online"`
	ReceiptDate   string  `json:"receipt_date"   validate:"required,datetime=2006-01-02"`
	ReceiptNotes  *string `json:"receipt_notes"`
}

func (r *CreateReceiptRequest) ToModel() (*model.Receipt, error) {
	date, err := time.Parse("2006-01-02", r.ReceiptDate)
	if err != nil {
		return nil, err
	}
	m := &model.Receipt{
		ReceiptNumber:   r.ReceiptNumber,
		ReceiptClientID: r.ReceiptClientID,
		ReceiptCaseID:   r.ReceiptCaseID,
		ReceiptBillID:   r.ReceiptBillID,
		ReceiptAmount:   r.ReceiptAmount,
		ReceiptMethod:   model.ReceiptMethodCash,
		ReceiptDate:     date,
		ReceiptNotes:    r.ReceiptNotes,
	}
	if r.ReceiptMethod != "" {
		m.ReceiptMethod = r.ReceiptMethod
	}
	return m, nil
}

type UpdateReceiptRequest struct {
	ReceiptNumber *string  `json:"receipt_number" validate:"omitempty,min=1,max=60"`
	ReceiptAmount *float64 `json:"receipt_amount" validate:"omitempty,gt=0"`
	ReceiptMethod *string  `json:"receipt_method" validate:"omitempty,oneof=cash transfer cheque online"`
	ReceiptDate   *string  `json:"receipt_date"   validate:"omitempty,datetime=2006-01-02"`
	ReceiptNotes  *string  `json:"receipt_notes"`
}

func (r *UpdateReceiptRequest) ApplyTo(m *model.Receipt) error {
	if r.ReceiptNumber != nil {
		m.ReceiptNumber = *r.ReceiptNumber
	}
	if r.ReceiptAmount != nil {
		m.ReceiptAmount = *r.ReceiptAmount
	}
	if r.ReceiptMethod != nil {
		m.ReceiptMethod = *r.ReceiptMethod
	}
	if r.ReceiptDate != nil && *r.ReceiptDate != "" {
		t, err := time.Parse("2006-01-02", *r.ReceiptDate)
		if err != nil {
			return err
		}
		m.ReceiptDate = t
	}
	if r.ReceiptNotes != nil {
		m.ReceiptNotes = r.ReceiptNotes
	}
	return nil
}
