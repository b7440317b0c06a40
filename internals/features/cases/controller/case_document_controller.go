// file: internals/features/cases/controller/case_document_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "maktabi_backend/internals/features/activity/model"
	activityService "maktabi_backend/internals/features/activity/service"
	dto "maktabi_backend/internals/features/cases/dto"
	model "maktabi_backend/internals/features/cases/model"
	helper "maktabi_backend/internals/helpers"
	"maktabi_backend/internals/helpers/storage"
)

type CaseDocumentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
	Storage   *storage.Client
}

func NewCaseDocumentController(db *gorm.DB, st *storage.Client) *CaseDocumentController {
	return &CaseDocumentController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
		Storage:   st,
	}
}

// ========== Upload ==========
// multipart form: document_title (required), document_type, document_notes,
// file "document". The binary goes to the case-documents bucket under the
// case id folder; the row keeps the opaque path.
func (ctl *CaseDocumentController) Upload(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "خدمة التخزين غير مهيأة")
	}

	caseID, err := uuid.Parse(strings.TrimSpace(c.Params("caseId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var caseRow model.Case
	if err := ctl.DB.First(&caseRow, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القضية غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضية: "+err.Error())
	}

	title := strings.TrimSpace(c.FormValue("document_title"))
	if title == "" {
		return helper.JsonValidationError(c, map[string][]string{
			"document_title": {"هذا الحقل مطلوب"},
		})
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"document": {"هذا الحقل مطلوب"},
		})
	}

	up, err := ctl.Storage.UploadFile(storage.BucketCaseDocuments, caseID.String(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في رفع المستند: "+err.Error())
	}

	uid := userID
	m := &model.CaseDocument{
		DocumentCaseID:     caseID,
		DocumentTitle:      title,
		DocumentPath:       &up.Path,
		DocumentURL:        &up.URL,
		DocumentSize:       &up.Size,
		DocumentUploadedBy: &uid,
	}
	if up.ThumbURL != "" {
		m.DocumentThumbURL = &up.ThumbURL
	}
	if t := strings.TrimSpace(c.FormValue("document_type")); t != "" {
		m.DocumentType = &t
	}
	if n := strings.TrimSpace(c.FormValue("document_notes")); n != "" {
		m.DocumentNotes = &n
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		// row failed after the object landed: drop the orphan object
		if delErr := ctl.Storage.Delete(storage.BucketCaseDocuments, up.Path); delErr != nil {
			log.Printf("[ERROR] orphan object cleanup %s: %v", up.Path, delErr)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حفظ المستند: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityDocument,
		EntityID:    m.DocumentID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("رفع مستند للقضية %s: %s", caseRow.CaseNumber, m.DocumentTitle),
		Details:     fiber.Map{"path": up.Path, "size": up.Size},
	})

	return helper.JsonCreated(c, "تم رفع المستند بنجاح", m)
}

func (ctl *CaseDocumentController) ListByCase(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	caseID, err := uuid.Parse(strings.TrimSpace(c.Params("caseId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var rows []model.CaseDocument
	if err := ctl.DB.Where("document_case_id = ?", caseID).
		Order("document_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المستندات: "+err.Error())
	}

	return helper.JsonOK(c, "", rows)
}

// Update changes document metadata only; re-upload goes through Upload.
func (ctl *CaseDocumentController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف المستند غير صالح")
	}

	var m model.CaseDocument
	if err := ctl.DB.First(&m, "document_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المستند غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المستند: "+err.Error())
	}

	var req dto.UpdateCaseDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث المستند: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityDocument,
		EntityID:    m.DocumentID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل بيانات المستند: %s", m.DocumentTitle),
	})

	return helper.JsonUpdated(c, "تم تحديث المستند بنجاح", m)
}

func (ctl *CaseDocumentController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف المستند غير صالح")
	}

	var m model.CaseDocument
	if err := ctl.DB.First(&m, "document_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المستند غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المستند: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف المستند: "+err.Error())
	}

	// best-effort object removal; the row is already gone
	if ctl.Storage != nil && m.DocumentPath != nil {
		if err := ctl.Storage.Delete(storage.BucketCaseDocuments, *m.DocumentPath); err != nil {
			log.Printf("[ERROR] storage delete %s: %v", *m.DocumentPath, err)
		}
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityDocument,
		EntityID:    m.DocumentID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف المستند: %s", m.DocumentTitle),
	})

	return helper.JsonDeleted(c, "تم حذف المستند بنجاح")
}
