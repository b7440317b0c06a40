// file: internals/features/cases/controller/case_event_controller.go
package controller

import (
	"errors"
	"fmt"
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

type CaseEventController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
}

func NewCaseEventController(db *gorm.DB) *CaseEventController {
	return &CaseEventController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
	}
}

func (ctl *CaseEventController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCaseEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"event_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إضافة الحدث: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityEvent,
		EntityID:    m.EventID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إضافة حدث للقضية: %s", m.EventTitle),
	})

	return helper.JsonCreated(c, "تمت إضافة الحدث بنجاح", m)
}

func (ctl *CaseEventController) ListByCase(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	caseID, err := uuid.Parse(strings.TrimSpace(c.Params("caseId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var rows []model.CaseEvent
	if err := ctl.DB.Where("event_case_id = ?", caseID).
		Order("event_date DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الأحداث: "+err.Error())
	}

	return helper.JsonOK(c, "", rows)
}

func (ctl *CaseEventController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الحدث غير صالح")
	}

	var m model.CaseEvent
	if err := ctl.DB.First(&m, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الحدث غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الحدث: "+err.Error())
	}

	var req dto.UpdateCaseEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	if err := req.ApplyTo(&m); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"event_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث الحدث: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityEvent,
		EntityID:    m.EventID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل الحدث: %s", m.EventTitle),
	})

	return helper.JsonUpdated(c, "تم تحديث الحدث بنجاح", m)
}

func (ctl *CaseEventController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الحدث غير صالح")
	}

	var m model.CaseEvent
	if err := ctl.DB.First(&m, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الحدث غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الحدث: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف الحدث: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityEvent,
		EntityID:    m.EventID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف الحدث: %s", m.EventTitle),
	})

	return helper.JsonDeleted(c, "تم حذف الحدث بنجاح")
}
