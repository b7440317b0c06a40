// file: internals/features/courts/controller/court_controller.go
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
	dto "maktabi_backend/internals/features/courts/dto"
	model "maktabi_backend/internals/features/courts/model"
	helper "maktabi_backend/internals/helpers"
)

type CourtController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
}

func NewCourtController(db *gorm.DB) *CourtController {
	return &CourtController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
	}
}

func (ctl *CourtController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	req.CourtName = strings.TrimSpace(req.CourtName)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إضافة المحكمة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCourt,
		EntityID:    m.CourtID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إضافة محكمة: %s", m.CourtName),
	})

	return helper.JsonCreated(c, "تمت إضافة المحكمة بنجاح", m)
}

func (ctl *CourtController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.Model(&model.Court{})
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("court_city = ?", city)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المحاكم: "+err.Error())
	}

	var rows []model.Court
	if err := q.Order("court_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المحاكم: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

func (ctl *CourtController) GetByID(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف المحكمة غير صالح")
	}

	var m model.Court
	if err := ctl.DB.First(&m, "court_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المحكمة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المحكمة: "+err.Error())
	}

	return helper.JsonOK(c, "", m)
}

func (ctl *CourtController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف المحكمة غير صالح")
	}

	var m model.Court
	if err := ctl.DB.First(&m, "court_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المحكمة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المحكمة: "+err.Error())
	}

	var req dto.UpdateCourtRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث المحكمة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCourt,
		EntityID:    m.CourtID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل بيانات المحكمة: %s", m.CourtName),
	})

	return helper.JsonUpdated(c, "تم تحديث المحكمة بنجاح", m)
}

func (ctl *CourtController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف المحكمة غير صالح")
	}

	var m model.Court
	if err := ctl.DB.First(&m, "court_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "المحكمة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب المحكمة: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف المحكمة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityCourt,
		EntityID:    m.CourtID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف المحكمة: %s", m.CourtName),
	})

	return helper.JsonDeleted(c, "تم حذف المحكمة بنجاح")
}
