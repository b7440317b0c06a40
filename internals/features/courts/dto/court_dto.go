package dto

import (
	model "maktabi_backend/internals/features/courts/model"
)

type CreateCourtRequest struct {
	CourtName string  `json:"court_name" validate:"required,max=200"`
	CourtType *string `json:"court_type" validate:"omitempty,max=80"`
	CourtCity *string `json:"court_city" validate:"omitempty,max=120"`
}

func (r *CreateCourtRequest) ToModel() *model.Court {
	return &model.Court{
		CourtName: r.CourtName,
		CourtType: r.CourtType,
		CourtCity: r.CourtCity,
	}
}

type UpdateCourtRequest struct {
	CourtName *string `json:"court_name" validate:"omitempty,min=1,max=200"`
	CourtType *string `json:"court_type" validate:"omitempty,max=80"`
	CourtCity *string `json:"court_city" validate:"omitempty,max=120"`
}

func (r *UpdateCourtRequest) ApplyTo(m *model.Court) {
	if r.CourtName != nil {
		m.CourtName = *r.CourtName
	}
	if r.CourtType != nil {
		m.CourtType = r.CourtType
	}
	if r.CourtCity != nil {
		m.CourtCity = r.CourtCity
	}
}
