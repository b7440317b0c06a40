// file: internals/features/activity/controller/activity_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/activity/model"
	helper "maktabi_backend/internals/helpers"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

// List returns the audit trail, newest first. Filters: ?entity_type= and
// ?entity_id=. There is deliberately no create/update/delete endpoint.
func (ctl *ActivityController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.Activity{})
	if et := strings.TrimSpace(c.Query("entity_type")); et != "" {
		q = q.Where("activity_entity_type = ?", et)
	}
	if eidStr := strings.TrimSpace(c.Query("entity_id")); eidStr != "" {
		eid, err := uuid.Parse(eidStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "معرّف السجل غير صالح")
		}
		q = q.Where("activity_entity_id = ?", eid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سجل النشاطات: "+err.Error())
	}

	var rows []model.Activity
	if err := q.Order("activity_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سجل النشاطات: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}
