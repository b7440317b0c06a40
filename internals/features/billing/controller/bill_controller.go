// file: internals/features/billing/controller/bill_controller.go
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
	billingService "maktabi_backend/internals/features/billing/service"
	clientModel "maktabi_backend/internals/features/clients/model"
	helper "maktabi_backend/internals/helpers"
)

type BillController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Activity  *activityService.Logger
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{
		DB:        db,
		Validator: helper.NewValidator(),
		Activity:  activityService.NewLogger(db),
	}
}

// ========== Create ==========
func (ctl *BillController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	req.BillNumber = strings.TrimSpace(req.BillNumber)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"bill_due_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم الفاتورة مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في إنشاء الفاتورة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityBill,
		EntityID:    m.BillID,
		Action:      activityModel.ActionCreate,
		Description: fmt.Sprintf("إنشاء فاتورة %s بمبلغ %.2f", m.BillNumber, m.BillAmount),
	})

	return helper.JsonCreated(c, "تم إنشاء الفاتورة بنجاح", m)
}

// ========== List ==========
func (ctl *BillController) List(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.Bill{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("bill_status = ?", status)
	}
	if clientStr := strings.TrimSpace(c.Query("client_id")); clientStr != "" {
		clientID, err := uuid.Parse(clientStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الموكل غير صالح")
		}
		q = q.Where("bill_client_id = ?", clientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفواتير: "+err.Error())
	}

	var rows []model.Bill
	if err := q.Order("bill_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفواتير: "+err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// ========== GetByID ==========
// The bill plus any receipts written against it.
func (ctl *BillController) GetByID(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الفاتورة غير صالح")
	}

	var m model.Bill
	if err := ctl.DB.First(&m, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الفاتورة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفاتورة: "+err.Error())
	}

	var receipts []model.Receipt
	if err := ctl.DB.Where("receipt_bill_id = ?", id).
		Order("receipt_date ASC").Find(&receipts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب سندات القبض: "+err.Error())
	}

	return helper.JsonOK(c, "", fiber.Map{
		"bill":     m,
		"receipts": receipts,
	})
}

// ========== Update ==========
func (ctl *BillController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الفاتورة غير صالح")
	}

	var m model.Bill
	if err := ctl.DB.First(&m, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الفاتورة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفاتورة: "+err.Error())
	}

	var req dto.UpdateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	if err := req.ApplyTo(&m); err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"bill_due_date": {"صيغة التاريخ غير صالحة"},
		})
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "رقم الفاتورة مستخدم مسبقاً")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في تحديث الفاتورة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityBill,
		EntityID:    m.BillID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("تعديل الفاتورة %s", m.BillNumber),
	})

	return helper.JsonUpdated(c, "تم تحديث الفاتورة بنجاح", m)
}

// ========== Delete ==========
func (ctl *BillController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الفاتورة غير صالح")
	}

	var m model.Bill
	if err := ctl.DB.First(&m, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الفاتورة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفاتورة: "+err.Error())
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حذف الفاتورة: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityBill,
		EntityID:    m.BillID,
		Action:      activityModel.ActionDelete,
		Description: fmt.Sprintf("حذف الفاتورة %s", m.BillNumber),
	})

	return helper.JsonDeleted(c, "تم حذف الفاتورة بنجاح")
}

// ========== Pay ==========
// Requests a Snap payment link for an unpaid bill and stores the token and
// redirect URL on the row.
func (ctl *BillController) Pay(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "معرّف الفاتورة غير صالح")
	}

	var m model.Bill
	if err := ctl.DB.First(&m, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "الفاتورة غير موجودة")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الفاتورة: "+err.Error())
	}
	if m.BillStatus != model.BillStatusUnpaid {
		return helper.JsonError(c, fiber.StatusConflict, "الفاتورة ليست بانتظار السداد")
	}

	var client clientModel.Client
	if err := ctl.DB.First(&client, "client_id = ?", m.BillClientID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر جلب الموكل: "+err.Error())
	}

	orderID := billingService.NewPaymentOrderID(m.BillNumber)
	email := ""
	if client.ClientEmail != nil {
		email = *client.ClientEmail
	}

	token, redirectURL, err := billingService.CreateBillPayment(&m, orderID, client.FullName(), email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "فشل في إنشاء رابط الدفع: "+err.Error())
	}

	m.BillPaymentOrderID = &orderID
	m.BillPaymentToken = &token
	m.BillPaymentRedirectURL = &redirectURL
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "فشل في حفظ بيانات الدفع: "+err.Error())
	}

	ctl.Activity.Log(activityService.Entry{
		UserID:      userID,
		UserName:    helper.GetUserNameFromToken(c),
		EntityType:  activityModel.EntityBill,
		EntityID:    m.BillID,
		Action:      activityModel.ActionUpdate,
		Description: fmt.Sprintf("إنشاء رابط دفع للفاتورة %s", m.BillNumber),
		Details:     fiber.Map{"order_id": orderID},
	})

	return helper.JsonOK(c, "تم إنشاء رابط الدفع", fiber.Map{
		"order_id":     orderID,
		"token":        token,
		"redirect_url": redirectURL,
	})
}
