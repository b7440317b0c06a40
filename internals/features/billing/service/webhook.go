// file: internals/features/billing/service/webhook.go
package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	activityModel "maktabi_backend/internals/features/activity/model"
	activityService "maktabi_backend/internals/features/activity/service"
	model "maktabi_backend/internals/features/billing/model"
)

// HandleBillPaymentWebhook processes a Midtrans status notification. On
// settlement the bill is marked paid and an online receipt row is written.
// The raw notification body is kept in the activity details.
func HandleBillPaymentWebhook(db *gorm.DB, body map[string]interface{}, loc *time.Location) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] incomplete webhook payload:", body)
		return fmt.Errorf("invalid payload")
	}

	var bill model.Bill
	if err := db.Where("bill_payment_order_id = ?", orderID).First(&bill).Error; err != nil {
		log.Println("[ERROR] bill not found for order:", orderID, err)
		return fmt.Errorf("bill with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		if bill.BillStatus == model.BillStatusPaid {
			return nil // duplicate notification
		}
		now := time.Now().In(loc)
		bill.BillStatus = model.BillStatusPaid
		bill.BillPaidAt = &now
		if err := db.Save(&bill).Error; err != nil {
			log.Println("[ERROR] saving paid bill:", err)
			return err
		}

		billID := bill.BillID
		receipt := model.Receipt{
			ReceiptNumber:   "RCPT-" + orderID,
			ReceiptClientID: bill.BillClientID,
			ReceiptCaseID:   bill.BillCaseID,
			ReceiptBillID:   &billID,
			ReceiptAmount:   bill.BillAmount,
			ReceiptMethod:   model.ReceiptMethodOnline,
			ReceiptDate:     now,
		}
		if err := db.Create(&receipt).Error; err != nil {
			// the bill is already paid; the missing receipt is logged, not
			// rolled back
			log.Printf("[ERROR] receipt insert for order %s: %v", orderID, err)
		}

		activityService.NewLogger(db).Log(activityService.Entry{
			UserName:    "بوابة الدفع",
			EntityType:  activityModel.EntityBill,
			EntityID:    bill.BillID,
			Action:      activityModel.ActionPay,
			Description: fmt.Sprintf("سداد الفاتورة %s إلكترونياً", bill.BillNumber),
			Details:     body,
		})

	case "expire", "cancel", "deny":
		// payment attempt failed; the bill stays unpaid and the link can be
		// regenerated
		log.Printf("[INFO] payment %s for order %s", status, orderID)

	default:
		log.Println("[INFO] unhandled transaction status:", status)
	}

	return nil
}
