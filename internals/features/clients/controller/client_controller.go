// file: internals/features/clients/controller/client_controller.go
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
	dto "maktabi_backend/internals/features/clients/dto"
	model "maktabi_backend/internals/features/clients/model"
	helper "maktabi_backend/internals/helpers"
	"maktabi_backend/internals/helpers/storage"
)

type ClientController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
	Storage   *storage.Client
}

func NewClientController(db *gorm.DB, st *storage.Client) *ClientController {
	return &ClientController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
		Storage:   st,
	}
}

// ========== Create ==========
func (ctl *ClientController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	req.ClientFirstName = strings.TrimSpace(req.ClientFirstName)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إضافة الموكل: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityClient,
		EntityID:    m.ClientID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إضافة موكل جديد: %s", m.FullName()),
	})

	return helper.JsonCreated(c, "تمت إضافة الموكل بنجاح", m)
}

// ========== List ==========
func (ctl *ClientController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.Client{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"client_first_name LIKE ? OR client_last_name LIKE ? OR client_phone LIKE ?",
			like, like, like,
		)
	}
	if ct := strings.TrimSpace(c.Query("type")); ct != "" {
		q = q.Where("client_type = ?", ct)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكلين: "+err.Error())
	}

	var rows []model.Client
	if err := q.Order("client_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكلين: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// ========== GetByID ==========
func (ctl *ClientController) GetByID(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
	}

	var m model.Client
	if err := ctl.DB.First(&m, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الموكل غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكل: "+err.Error())
	}

	return helper.JsonOK(c, "", m)
}

// ========== Update ==========
func (ctl *ClientController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
	}

	var m model.Client
	if err := ctl.DB.First(&m, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الموكل غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكل: "+err.Error())
	}

	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث الموكل: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityClient,
		EntityID:    m.ClientID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل بيانات الموكل: %s", m.FullName()),
	})

	return helper.JsonUpdated(c, "تم تحديث الموكل بنجاح", m)
}

// ========== Delete ==========
func (ctl *ClientController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
	}

	var m model.Client
	if err := ctl.DB.First(&m, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الموكل غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكل: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف الموكل: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityClient,
		EntityID:    m.ClientID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف الموكل: %s", m.FullName()),
	})

	return helper.JsonDeleted(c, "تم حذف الموكل بنجاح")
}

// ========== UploadPhoto ==========
// multipart field "photo"; image is re-encoded to webp and stored in the
// client-photos bucket, the public URL saved on the row.
func (ctl *ClientController) UploadPhoto(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "خدمة التخزين غير مهيأة")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
	}

	var m model.Client
	if err := ctl.DB.First(&m, "client_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الموكل غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكل: "+err.Error())
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"photo": {"هذا الحقل مطلوب"},
		})
	}

	up, err := ctl.Storage.UploadFile(storage.BucketClientPhotos, m.ClientID.String(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في رفع الصورة: "+err.Error())
	}

	m.ClientPhotoURL = &up.URL
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حفظ الصورة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityClient,
		EntityID:    m.ClientID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تحديث صورة الموكل: %s", m.FullName()),
		Details:     fiber.Map{"path": up.Path, "size": up.Size},
	})

	return helper.JsonUpdated(c, "تم رفع الصورة بنجاح", m)
}
