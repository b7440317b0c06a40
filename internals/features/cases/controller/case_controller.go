// file: internals/features/cases/controller/case_controller.go
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
)

type CaseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
}

func NewCaseController(db *gorm.DB) *CaseController {
	return &CaseController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
	}
}

// ========== Create ==========
// The case row plus optional nested parties/documents. Inserts are
// sequential and independent: a failed child never rolls back the case, it
// is logged and surfaced in the warnings field.
func (ctl *CaseController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	req.CaseTitle = strings.TrimSpace(req.CaseTitle)
	req.CaseNumber = strings.TrimSpace(req.CaseNumber)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم القضية مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إنشاء القضية: "+err.Error())
	}

	var warnings []string
	for i := range req.Parties {
		p := req.Parties[i].ToModel(m.CaseID)
		if err := ctl.DB.Create(p).Error; err != nil {
			log.Printf("[ERROR] case %s: party insert %q: %v", m.CaseID, p.PartyName, err)
			warnings = append(warnings, fmt.Sprintf("تعذر إضافة الطرف: %s", p.PartyName))
		}
	}
	for i := range req.Documents {
		d := req.Documents[i].ToModel(m.CaseID, userID)
		if err := ctl.DB.Create(d).Error; err != nil {
			log.Printf("[ERROR] case %s: document insert %q: %v", m.CaseID, d.DocumentTitle, err)
			warnings = append(warnings, fmt.Sprintf("تعذر إضافة المستند: %s", d.DocumentTitle))
		}
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCase,
		EntityID:    m.CaseID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إنشاء قضية جديدة: %s (%s)", m.CaseTitle, m.CaseNumber),
	})

	body := fiber.Map{
		"success": true,
		"message": "تم إنشاء القضية بنجاح",
		"data":    m,
	}
	if len(warnings) > 0 {
		body["warnings"] = warnings
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// ========== List ==========
func (ctl *CaseController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.Case{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("case_status = ?", status)
	}
	if caseType := strings.TrimSpace(c.Query("type")); caseType != "" {
		q = q.Where("case_type = ?", caseType)
	}
	if clientStr := strings.TrimSpace(c.Query("client_id")); clientStr != "" {
		clientID, err := uuid.Parse(clientStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
		}
		q = q.Where("case_client_id = ?", clientID)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("case_title LIKE ? OR case_number LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضايا: "+err.Error())
	}

	var rows []model.Case
	if err := q.Order("case_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضايا: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// ========== GetByID ==========
// Returns the case plus its children (parties, documents, events) for the
// case detail page.
func (ctl *CaseController) GetByID(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var m model.Case
	if err := ctl.DB.First(&m, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القضية غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضية: "+err.Error())
	}

	var parties []model.CaseParty
	if err := ctl.DB.Where("party_case_id = ?", id).
		Order("party_created_at ASC").Find(&parties).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب أطراف القضية: "+err.Error())
	}

	var documents []model.CaseDocument
	if err := ctl.DB.Where("document_case_id = ?", id).
		Order("document_created_at DESC").Find(&documents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب مستندات القضية: "+err.Error())
	}

	var events []model.CaseEvent
	if err := ctl.DB.Where("event_case_id = ?", id).
		Order("event_date DESC").Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب أحداث القضية: "+err.Error())
	}

	return helper.JsonOK(c, "", fiber.Map{
		"case":      m,
		"parties":   parties,
		"documents": documents,
		"events":    events,
	})
}

// ========== Update ==========
func (ctl *CaseController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var m model.Case
	if err := ctl.DB.First(&m, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القضية غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضية: "+err.Error())
	}

	var req dto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم القضية مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث القضية: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCase,
		EntityID:    m.CaseID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل القضية: %s (%s)", m.CaseTitle, m.CaseNumber),
	})

	return helper.JsonUpdated(c, "تم تحديث القضية بنجاح", m)
}

// ========== Delete ==========
func (ctl *CaseController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var m model.Case
	if err := ctl.DB.First(&m, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "القضية غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب القضية: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف القضية: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCase,
		EntityID:    m.CaseID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف القضية: %s (%s)", m.CaseTitle, m.CaseNumber),
	})

	return helper.JsonDeleted(c, "تم حذف القضية بنجاح")
}
