// file: internals/features/clients/dto/client_dto.go
package dto

import (
	model "maktabi_backend/internals/features/clients/model"
)

/* =========================================================
   REQUEST: Create
   ========================================================= */

type CreateClientRequest struct {
	ClientType      string `json:"client_type"       validate:"omitempty,oneof=individual company"`
	ClientFirstName string `json:"client_first_name" validate:"required,max=120"`
	ClientLastName  string `json:"client_last_name"  validate:"omitempty,max=120"`

	ClientCompanyName *string `json:"client_company_name" validate:"omitempty,max=200"`
	ClientNationalID  *string `json:"client_national_id"  validate:"omitempty,max=40"`
	ClientPhone       *string `json:"client_phone"        validate:"omitempty,max=30"`
	ClientEmail       *string `json:"client_email"        validate:"omitempty,email"`
	ClientAddress     *string `json:"client_address"`
	ClientNotes       *string `json:"client_notes"`
}

func (r *CreateClientRequest) ToModel() *model.Client {
	m := &model.Client{
		ClientType:        model.ClientTypeIndividual,
		ClientFirstName:   r.ClientFirstName,
		ClientLastName:    r.ClientLastName,
		ClientCompanyName: r.ClientCompanyName,
		ClientNationalID:  r.ClientNationalID,
		ClientPhone:       r.ClientPhone,
		ClientEmail:       r.ClientEmail,
		ClientAddress:     r.ClientAddress,
		ClientNotes:       r.ClientNotes,
	}
	if r.ClientType != "" {
		m.ClientType = r.ClientType
	}
	return m
}

/* =========================================================
   REQUEST: Update (partial; nil = keep current)
   ========================================================= */

type UpdateClientRequest struct {
	ClientType      *string `json:"client_type"       validate:"omitempty,oneof=individual company"`
	ClientFirstName *string `json:"client_first_name" validate:"omitempty,min=1,max=120"`
	ClientLastName  *string `json:"client_last_name"  validate:"omitempty,max=120"`

	ClientCompanyName *string `json:"client_company_name" validate:"omitempty,max=200"`
	ClientNationalID  *string `json:"client_national_id"  validate:"omitempty,max=40"`
	ClientPhone       *string `json:"client_phone"        validate:"omitempty,max=30"`
	ClientEmail       *string `json:"client_email"        validate:"omitempty,email"`
	ClientAddress     *string `json:"client_address"`
	ClientNotes       *string `json:"client_notes"`
}

func (r *UpdateClientRequest) ApplyTo(m *model.Client) {
	if r.ClientType != nil {
		m.ClientType = *r.ClientType
	}
	if r.ClientFirstName != nil {
		m.ClientFirstName = *r.ClientFirstName
	}
	if r.ClientLastName != nil {
		m.ClientLastName = *r.ClientLastName
	}
	if r.ClientCompanyName != nil {
		m.ClientCompanyName = r.ClientCompanyName
	}
	if r.ClientNationalID != nil {
		m.ClientNationalID = r.ClientNationalID
	}
	if r.ClientPhone != nil {
		m.ClientPhone = r.ClientPhone
	}
	if r.ClientEmail != nil {
		m.ClientEmail = r.ClientEmail
	}
	if r.ClientAddress != nil {
		m.ClientAddress = r.ClientAddress
	}
	if r.ClientNotes != nil {
		m.ClientNotes = r.ClientNotes
	}
}
