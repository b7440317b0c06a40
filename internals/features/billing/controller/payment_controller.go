// file: internals/features/billing/controller/payment_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingService "maktabi_backend/internals/features/billing/service"
	helper "maktabi_backend/internals/helpers"
)

// PaymentController receives server-to-server status notifications from the
// payment gateway. The route is excluded from the auth middleware.
type PaymentController struct {
	DB       *gorm.DB
	Location *time.Location
}

func NewPaymentController(db *gorm.DB, loc *time.Location) *PaymentController {
	return &PaymentController{DB: db, Location: loc}
}

// ========== HandleNotification ==========
func (ctl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "طلب غير صالح")
	}

	if err := billingService.HandleBillPaymentWebhook(ctl.DB, body, ctl.Location); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "تمت معالجة الإشعار", nil)
}
