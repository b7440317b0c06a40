package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabi_backend/internals/features/billing/controller"
	"maktabi_backend/internals/helpers/storage"
	"maktabi_backend/internals/middlewares"
)

func BillingRoutes(api fiber.Router, db *gorm.DB, st *storage.Client, loc *time.Location) {
	billCtl := controller.NewBillController(db)
	receiptCtl := controller.NewReceiptController(db, st)
	paymentCtl := controller.NewPaymentController(db, loc)

	bills := api.Group("/bills")
	bills.Get("/", billCtl.List)
	bills.Post("/", billCtl.Create)
	bills.Get("/:id", billCtl.GetByID)
	bills.Put("/:id", billCtl.Update)
	bills.Delete("/:id", billCtl.Delete)
	bills.Post("/:id/pay", billCtl.Pay)

	receipts := api.Group("/receipts")
	receipts.Get("/", receiptCtl.List)
	receipts.Post("/", receiptCtl.Create)
	receipts.Get("/:id", receiptCtl.GetByID)
	receipts.Put("/:id", receiptCtl.Update)
	receipts.Delete("/:id", receiptCtl.Delete)
	receipts.Post("/:id/scan", middlewares.UploadRateLimiter(), receiptCtl.UploadScan)

	// gateway callback, skipped by the auth middleware
	api.Post("/payments/notification", paymentCtl.HandleNotification)
}
