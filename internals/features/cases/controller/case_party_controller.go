// file: internals/features/cases/controller/case_party_controller.go
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

type CasePartyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
}

func NewCasePartyController(db *gorm.DB) *CasePartyController {
	return &CasePartyController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
	}
}

func (ctl *CasePartyController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCasePartyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إضافة الطرف: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityParty,
		EntityID:    m.PartyID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إضافة طرف للقضية: %s (%s)", m.PartyName, m.PartyRole),
	})

	return helper.JsonCreated(c, "تمت إضافة الطرف بنجاح", m)
}

func (ctl *CasePartyController) ListByCase(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	caseID, err := uuid.Parse(strings.TrimSpace(c.Params("caseId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var rows []model.CaseParty
	if err := ctl.DB.Where("party_case_id = ?", caseID).
		Order("party_created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الأطراف: "+err.Error())
	}

	return helper.JsonOK(c, "", rows)
}

func (ctl *CasePartyController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الطرف غير صالح")
	}

	var m model.CaseParty
	if err := ctl.DB.First(&m, "party_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الطرف غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الطرف: "+err.Error())
	}

	var req dto.UpdateCasePartyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث الطرف: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityParty,
		EntityID:    m.PartyID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل بيانات الطرف: %s", m.PartyName),
	})

	return helper.JsonUpdated(c, "تم تحديث الطرف بنجاح", m)
}

func (ctl *CasePartyController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الطرف غير صالح")
	}

	var m model.CaseParty
	if err := ctl.DB.First(&m, "party_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الطرف غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الطرف: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف الطرف: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityParty,
		EntityID:    m.PartyID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف الطرف: %s", m.PartyName),
	})

	return helper.JsonDeleted(c, "تم حذف الطرف بنجاح")
}
