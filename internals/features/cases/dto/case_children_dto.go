// file: internals/features/cases/dto/case_children_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "maktabi_backend/internals/features/cases/model"
)

/* =========================================================
   Case parties
   ========================================================= */

type CreateCasePartyRequest struct {
	PartyCaseID uuid.UUID `json:"party_case_id" validate:"required"`
	CreateCasePartyInline
}

func (r *CreateCasePartyRequest) ToModel() *model.CaseParty {
	return r.CreateCasePartyInline.ToModel(r.PartyCaseID)
}

type UpdateCasePartyRequest struct {
	PartyName  *string `json:"party_name" validate:"omitempty,min=1,max=200"`
	PartyRole  *string `json:"party_role" validate:"omitempty,oneof=plaintiff defendant witness lawyer other"`
	PartyPhone *string `json:"party_phone" validate:"omitempty,max=30"`
	PartyNotes *string `json:"party_notes"`
}

func (r *UpdateCasePartyRequest) ApplyTo(m *model.CaseParty) {
	if r.PartyName != nil {
		m.PartyName = *r.PartyName
	}
	if r.PartyRole != nil {
		m.PartyRole = *r.PartyRole
	}
	if r.PartyPhone != nil {
		m.PartyPhone = r.PartyPhone
	}
	if r.PartyNotes != nil {
		m.PartyNotes = r.PartyNotes
	}
}

/* =========================================================
   Case documents (metadata; the binary goes through the
   upload endpoint)
   ========================================================= */

type UpdateCaseDocumentRequest struct {
	DocumentTitle *string `json:"document_title" validate:"omitempty,min=1,max=200"`
	DocumentType  *string `json:"document_type"  validate:"omitempty,max=80"`
	DocumentNotes *string `json:"document_notes"`
}

func (r *UpdateCaseDocumentRequest) ApplyTo(m *model.CaseDocument) {
	if r.DocumentTitle != nil {
		m.DocumentTitle = *r.DocumentTitle
	}
	if r.DocumentType != nil {
		m.DocumentType = r.DocumentType
	}
	if r.DocumentNotes != nil {
		m.DocumentNotes = r.DocumentNotes
	}
}

/* =========================================================
   Case events
   ========================================================= */

type CreateCaseEventRequest struct {
	EventCaseID uuid.UUID `json:"event_case_id" validate:"required"`
	EventTitle  string    `json:"event_title"   validate:"required,max=200"`
	EventType   *string   `json:"event_type"    validate:"omitempty,max=80"`
	EventDate   *string   `json:"event_date"    validate:"omitempty,datetime=2006-01-02"`
	EventNotes  *string   `json:"event_notes"`
}

func (r *CreateCaseEventRequest) ToModel() (*model.CaseEvent, error) {
	m := &model.CaseEvent{
		EventCaseID: r.EventCaseID,
		EventTitle:  r.EventTitle,
		EventType:   r.EventType,
		EventNotes:  r.EventNotes,
	}
	if r.EventDate != nil && *r.EventDate != "" {
		t, err := time.Parse("2006-01-02", *r.EventDate)
		if err != nil {
			return nil, err
		}
		m.EventDate = &t
	}
	return m, nil
}

type UpdateCaseEventRequest struct {
	EventTitle *string `json:"event_title" validate:"omitempty,min=1,max=200"`
	EventType  *string `json:"event_type"  validate:"omitempty,max=80"`
	EventDate  *string `json:"event_date"  validate:"omitempty,datetime=2006-01-02"`
	EventNotes *string `json:"event_notes"`
}

func (r *UpdateCaseEventRequest) ApplyTo(m *model.CaseEvent) error {
	if r.EventTitle != nil {
		m.EventTitle = *r.EventTitle
	}
	if r.EventType != nil {
		m.EventType = r.EventType
	}
	if r.EventDate != nil {
		if *r.EventDate == "" {
			m.EventDate = nil
		} else {
			t, err := time.Parse("2006-01-02", *r.EventDate)
			if err != nil {
				return err
			}
			m.EventDate = &t
		}
	}
	if r.EventNotes != nil {
		m.EventNotes = r.EventNotes
	}
	return nil
}
