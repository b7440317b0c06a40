// file: internals/features/sessions/controller/session_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "maktabi_backend/internals/features/activity/model"
	activityService "maktabi_backend/internals/features/activity/service"
	dto "maktabi_backend/internals/features/sessions/dto"
	model "maktabi_backend/internals/features/sessions/model"
	sessionService "maktabi_backend/internals/features/sessions/service"
	helper "maktabi_backend/internals/helpers"
)

type SessionController struct {
	DB       *gorm.DB
	Activity *activityService.Logger
	Location *time.Location
}

func NewSessionController(db *gorm.DB, loc *time.Location) *SessionController {
	if loc == nil {
		loc = time.UTC
	}
	return &SessionController{
		DB:       db,
		Activity: activityService.NewLogger(db),
		Location: loc,
	}
}

// recompute runs after every session mutation. The mutation already
// committed; a recompute failure is logged, not surfaced as a rollback.
func (ctl *SessionController) recompute(caseID uuid.UUID) {
	if err := sessionService.Recompute(ctl.DB, caseID, ctl.Location); err != nil {
		log.Printf("[ERROR] next-session recompute for case %s: %v", caseID, err)
	}
}

// ========== Create ==========
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var form dto.SessionForm
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if errs := dto.ValidateSessionForm(form, true); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	m, err := form.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إضافة الجلسة: "+err.Error())
	}

	ctl.recompute(m.SessionCaseID)

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntitySession,
		EntityID:    m.SessionID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إضافة جلسة بتاريخ %s في %s", m.SessionDate.Format("2006-01-02"), m.SessionLocation),
	})

	return helper.JsonCreated(c, "تمت إضافة الجلسة بنجاح", m)
}

// ========== Update ==========
func (ctl *SessionController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الجلسة غير صالح")
	}

	var m model.CourtSession
	if err := ctl.DB.First(&m, "session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الجلسة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الجلسة: "+err.Error())
	}

	var form dto.SessionForm
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if errs := dto.ValidateSessionForm(form, false); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	if err := form.ApplyTo(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث الجلسة: "+err.Error())
	}

	ctl.recompute(m.SessionCaseID)

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntitySession,
		EntityID:    m.SessionID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل الجلسة بتاريخ %s", m.SessionDate.Format("2006-01-02")),
	})

	return helper.JsonUpdated(c, "تم تحديث الجلسة بنجاح", m)
}

// ========== Delete ==========
func (ctl *SessionController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الجلسة غير صالح")
	}

	var m model.CourtSession
	if err := ctl.DB.First(&m, "session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الجلسة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الجلسة: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف الجلسة: "+err.Error())
	}

	ctl.recompute(m.SessionCaseID)

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntitySession,
		EntityID:    m.SessionID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف الجلسة بتاريخ %s", m.SessionDate.Format("2006-01-02")),
	})

	return helper.JsonDeleted(c, "تم حذف الجلسة بنجاح")
}

// ========== ListByCase ==========
func (ctl *SessionController) ListByCase(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	caseID, err := uuid.Parse(strings.TrimSpace(c.Params("caseId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف القضية غير صالح")
	}

	var rows []model.CourtSession
	if err := ctl.DB.Where("session_case_id = ?", caseID).
		Order("session_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الجلسات: "+err.Error())
	}

	return helper.JsonOK(c, "", rows)
}

// ========== ListUpcoming ==========
// All future sessions across cases, soonest first (office agenda view).
func (ctl *SessionController) ListUpcoming(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.CourtSession{}).
		Where("session_date >= ?", sessionService.StartOfToday(ctl.Location))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الجلسات: "+err.Error())
	}

	var rows []model.CourtSession
	if err := q.Order("session_date ASC, session_time ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الجلسات: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}
