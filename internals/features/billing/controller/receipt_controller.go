// file: internals/features/billing/controller/receipt_controller.go
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
	dto "maktabi_backend/internals/features/billing/dto"
	model "maktabi_backend/internals/features/billing/model"
	helper "maktabi_backend/internals/helpers"
	"maktabi_backend/internals/helpers/storage"
)

type ReceiptController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
	Storage   *storage.Client
}

func NewReceiptController(db *gorm.DB, st *storage.Client) *ReceiptController {
	return &ReceiptController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
		Storage:   st,
	}
}

// ========== Create ==========
func (ctl *ReceiptController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	req.ReceiptNumber = strings.TrimSpace(req.ReceiptNumber)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"receipt_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم سند القبض مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إنشاء سند القبض: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityReceipt,
		EntityID:    m.ReceiptID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إنشاء سند قبض %s بمبلغ %.2f", m.ReceiptNumber, m.ReceiptAmount),
	})

	return helper.JsonCreated(c, "تم إنشاء سند القبض بنجاح", m)
}

// ========== List ==========
func (ctl *ReceiptController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.Receipt{})
	if clientStr := strings.TrimSpace(c.Query("client_id")); clientStr != "" {
		clientID, err := uuid.Parse(clientStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
		}
		q = q.Where("receipt_client_id = ?", clientID)
	}
	if billStr := strings.TrimSpace(c.Query("bill_id")); billStr != "" {
		billID, err := uuid.Parse(billStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الفاتورة غير صالح")
		}
		q = q.Where("receipt_bill_id = ?", billID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سندات القبض: "+err.Error())
	}

	var rows []model.Receipt
	if err := q.Order("receipt_date DESC, receipt_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سندات القبض: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// ========== GetByID ==========
func (ctl *ReceiptController) GetByID(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف سند القبض غير صالح")
	}

	var m model.Receipt
	if err := ctl.DB.First(&m, "receipt_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "سند القبض غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سند القبض: "+err.Error())
	}

	return helper.JsonOK(c, "", m)
}

// ========== Update ==========
func (ctl *ReceiptController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف سند القبض غير صالح")
	}

	var m model.Receipt
	if err := ctl.DB.First(&m, "receipt_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "سند القبض غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سند القبض: "+err.Error())
	}

	var req dto.UpdateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	if err := req.ApplyTo(&m); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"receipt_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم سند القبض مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث سند القبض: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityReceipt,
		EntityID:    m.ReceiptID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل سند القبض %s", m.ReceiptNumber),
	})

	return helper.JsonUpdated(c, "تم تحديث سند القبض بنجاح", m)
}

// ========== Delete ==========
func (ctl *ReceiptController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف سند القبض غير صالح")
	}

	var m model.Receipt
	if err := ctl.DB.First(&m, "receipt_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "سند القبض غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سند القبض: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف سند القبض: "+err.Error())
	}

	if m.ReceiptFilePath != nil && ctl.Storage != nil {
		if err := ctl.Storage.Delete(storage.BucketReceipts, *m.ReceiptFilePath); err != nil {
			// the row is gone; the orphaned object is only logged
			fmt.Printf("[WARN] deleting receipt scan %s: %v\n", *m.ReceiptFilePath, err)
		}
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityReceipt,
		EntityID:    m.ReceiptID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف سند القبض %s", m.ReceiptNumber),
	})

	return helper.JsonDeleted(c, "تم حذف سند القبض بنجاح")
}

// ========== UploadScan ==========
// multipart field "scan"; stored in the receipts bucket.
func (ctl *ReceiptController) UploadScan(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "خدمة التخزين غير مهيأة")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف سند القبض غير صالح")
	}

	var m model.Receipt
	if err := ctl.DB.First(&m, "receipt_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "سند القبض غير موجود")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سند القبض: "+err.Error())
	}

	fh, err := c.FormFile("scan")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"scan": {"هذا الحقل مطلوب"},
		})
	}

	up, err := ctl.Storage.UploadFile(storage.BucketReceipts, m.ReceiptID.String(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في رفع الملف: "+err.Error())
	}

	m.ReceiptFilePath = &up.Path
	m.ReceiptFileURL = &up.URL
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حفظ الملف: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityReceipt,
		EntityID:    m.ReceiptID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("رفع صورة سند القبض %s", m.ReceiptNumber),
		Details:     fiber.Map{"path": up.Path, "size": up.Size},
	})

	return helper.JsonUpdated(c, "تم رفع الملف بنجاح", m)
}
