// file: internals/features/cases/model/case_document_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseDocument struct {
	DocumentID uuid.UUID `json:"document_id" gorm:"column:document_id;type:uuid;primaryKey"`

	DocumentCaseID uuid.UUID `json:"document_case_id" gorm:"column:document_case_id;type:uuid;not null;index"`

	DocumentTitle string  `json:"document_title"          gorm:"column:document_title;type:varchar(200);not null"`
	DocumentType  *string `json:"document_type,omitempty" gorm:"column:document_type;type:varchar(80)"`

	// Opaque object path inside the case-documents bucket + resolved public
	// URL. Size is the stored size (post webp re-encode for images).
	DocumentPath     *string `json:"document_path,omitempty"      gorm:"column:document_path;type:text"`
	DocumentURL      *string `json:"document_url,omitempty"       gorm:"column:document_url;type:text"`
	DocumentThumbURL *string `json:"document_thumb_url,omitempty" gorm:"column:document_thumb_url;type:text"`
	DocumentSize     *int64  `json:"document_size,omitempty"      gorm:"column:document_size"`

	DocumentNotes *string `json:"document_notes,omitempty" gorm:"column:document_notes;type:text"`

	DocumentUploadedBy *uuid.UUID `json:"document_uploaded_by,omitempty" gorm:"column:document_uploaded_by;type:uuid"`

	DocumentCreatedAt time.Time `json:"document_created_at" gorm:"column:document_created_at;not null;autoCreateTime"`
	DocumentUpdatedAt time.Time `json:"document_updated_at" gorm:"column:document_updated_at;not null;autoUpdateTime"`
}

func (CaseDocument) TableName() string { return "case_documents" }

func (m *CaseDocument) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentID == uuid.Nil {
		m.DocumentID = uuid.New()
	}
	return nil
}
