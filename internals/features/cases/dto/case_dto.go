// file: internals/features/cases/dto/case_dto.go
package dto

import (
	"github.com/google/uuid"

	model "maktabi_backend/internals/features/cases/model"
)

/* =========================================================
   REQUEST: Create (with optional nested children)
   ========================================================= */

type CreateCaseRequest struct {
	CaseTitle  string `json:"case_title"  validate:"required"`
	CaseNumber string `json:"case_number" validate:"required,max=80"`
	CaseType   string `json:"case_type"   validate:"required,max=80"`

	CaseStatus   string `json:"case_status"   validate:"omitempty,oneof=open on_hold closed"`
	CasePriority string `json:"case_priority" validate:"omitempty,oneof=low normal high urgent"`

	CaseCourtID  *uuid.UUID `json:"case_court_id"`
	CaseClientID uuid.UUID  `json:"case_client_id" validate:"required"`

	CaseValue       *float64 `json:"case_value" validate:"omitempty,min=0"`
	CaseDescription *string  `json:"case_description"`

	// Optional children inserted right after the case row. Inserts are
	// independent, not a transaction: a failed child leaves the case created
	// (reported via the warnings field in the response).
	Parties   []CreateCasePartyInline    `json:"parties"   validate:"omitempty,dive"`
	Documents []CreateCaseDocumentInline `json:"documents" validate:"omitempty,dive"`
}

type CreateCasePartyInline struct {
	PartyName  string  `json:"party_name" validate:"required,max=200"`
	PartyRole  string  `json:"party_role" validate:"required,oneof=plaintiff defendant witness lawyer other"`
	PartyPhone *string `json:"party_phone" validate:"omitempty,max=30"`
	PartyNotes *string `json:"party_notes"`
}

type CreateCaseDocumentInline struct {
	DocumentTitle string  `json:"document_title" validate:"required,max=200"`
	DocumentType  *string `json:"document_type"  validate:"omitempty,max=80"`
	DocumentPath  *string `json:"document_path"`
	DocumentNotes *string `json:"document_notes"`
}

func (r *CreateCaseRequest) ToModel() *model.Case {
	m := &model.Case{
		CaseTitle:       r.CaseTitle,
		CaseNumber:      r.CaseNumber,
		CaseType:        r.CaseType,
		CaseStatus:      model.CaseStatusOpen,
		CasePriority:    model.CasePriorityNormal,
		CaseCourtID:     r.CaseCourtID,
		CaseClientID:    r.CaseClientID,
		CaseValue:       r.CaseValue,
		CaseDescription: r.CaseDescription,
	}
	if r.CaseStatus != "" {
		m.CaseStatus = r.CaseStatus
	}
	if r.CasePriority != "" {
		m.CasePriority = r.CasePriority
	}
	return m
}

func (p *CreateCasePartyInline) ToModel(caseID uuid.UUID) *model.CaseParty {
	return &model.CaseParty{
		PartyCaseID: caseID,
		PartyName:   p.PartyName,
		PartyRole:   p.PartyRole,
		PartyPhone:  p.PartyPhone,
		PartyNotes:  p.PartyNotes,
	}
}

func (d *CreateCaseDocumentInline) ToModel(caseID uuid.UUID, uploadedBy uuid.UUID) *model.CaseDocument {
	m := &model.CaseDocument{
		DocumentCaseID: caseID,
		DocumentTitle:  d.DocumentTitle,
		DocumentType:   d.DocumentType,
		DocumentPath:   d.DocumentPath,
		DocumentNotes:  d.DocumentNotes,
	}
	if uploadedBy != uuid.Nil {
		uid := uploadedBy
		m.DocumentUploadedBy = &uid
	}
	return m
}

/* =========================================================
   REQUEST: Update (partial; nil = keep current)
   ========================================================= */

type UpdateCaseRequest struct {
	CaseTitle  *string `json:"case_title"  validate:"omitempty,min=1"`
	CaseNumber *string `json:"case_number" validate:"omitempty,min=1,max=80"`
	CaseType   *string `json:"case_type"   validate:"omitempty,min=1,max=80"`

	CaseStatus   *string `json:"case_status"   validate:"omitempty,oneof=open on_hold closed"`
	CasePriority *string `json:"case_priority" validate:"omitempty,oneof=low normal high urgent"`

	CaseCourtID  *uuid.UUID `json:"case_court_id"`
	CaseClientID *uuid.UUID `json:"case_client_id"`

	CaseValue       *float64 `json:"case_value" validate:"omitempty,min=0"`
	CaseDescription *string  `json:"case_description"`
}

// ApplyTo copies the set fields onto the row. case_next_session_date is
// deliberately absent: the derived field is only written by the sessions
// service.
func (r *UpdateCaseRequest) ApplyTo(m *model.Case) {
	if r.CaseTitle != nil {
		m.CaseTitle = *r.CaseTitle
	}
	if r.CaseNumber != nil {
		m.CaseNumber = *r.CaseNumber
	}
	if r.CaseType != nil {
		m.CaseType = *r.CaseType
	}
	if r.CaseStatus != nil {
		m.CaseStatus = *r.CaseStatus
	}
	if r.CasePriority != nil {
		m.CasePriority = *r.CasePriority
	}
	if r.CaseCourtID != nil {
		m.CaseCourtID = r.CaseCourtID
	}
	if r.CaseClientID != nil {
		m.CaseClientID = *r.CaseClientID
	}
	if r.CaseValue != nil {
		m.CaseValue = r.CaseValue
	}
	if r.CaseDescription != nil {
		m.CaseDescription = r.CaseDescription
	}
}
