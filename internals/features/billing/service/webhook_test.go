// file: internals/features/billing/service/webhook_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "maktabi_backend/internals/features/activity/model"
	model "maktabi_backend/internals/features/billing/model"
	clientModel "maktabi_backend/internals/features/clients/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&clientModel.Client{},
		&model.Bill{},
		&model.Receipt{},
		&activityModel.Activity{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBillWithOrder(t *testing.T, db *gorm.DB, orderID string) *model.Bill {
	t.Helper()
	client := clientModel.Client{ClientFirstName: "خالد"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	b := model.Bill{
		BillNumber:         "2026-001",
		BillClientID:       client.ClientID,
		BillAmount:         1500,
		BillStatus:         model.BillStatusUnpaid,
		BillPaymentOrderID: &orderID,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return &b
}

func TestWebhookSettlementMarksPaidAndWritesReceipt(t *testing.T) {
	db := openTestDB(t)
	orderID := "BILL-2026-001-1756500000"
	bill := seedBillWithOrder(t, db, orderID)

	body := map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": "settlement",
		"gross_amount":       "1500.00",
	}
	if err := HandleBillPaymentWebhook(db, body, time.UTC); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	var reloaded model.Bill
	if err := db.First(&reloaded, "bill_id = ?", bill.BillID).Error; err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	if reloaded.BillStatus != model.BillStatusPaid {
		t.Fatalf("bill status = %q, want paid", reloaded.BillStatus)
	}
	if reloaded.BillPaidAt == nil {
		t.Fatal("bill paid_at not set")
	}

	var receipt model.Receipt
	if err := db.First(&receipt, "receipt_bill_id = ?", bill.BillID).Error; err != nil {
		t.Fatalf("load receipt: %v", err)
	}
	if receipt.ReceiptMethod != model.ReceiptMethodOnline {
		t.Fatalf("receipt method = %q, want online", receipt.ReceiptMethod)
	}
	if receipt.ReceiptAmount != bill.BillAmount {
		t.Fatalf("receipt amount = %v, want %v", receipt.ReceiptAmount, bill.BillAmount)
	}

	var acts []activityModel.Activity
	if err := db.Where(
		"activity_entity_type = ? AND activity_entity_id = ? AND activity_action = ?",
		activityModel.EntityBill, bill.BillID, activityModel.ActionPay,
	).Find(&acts).Error; err != nil {
		t.Fatalf("load activities: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("pay activity rows = %d, want exactly 1", len(acts))
	}
}

func TestWebhookDuplicateSettlementIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	orderID := "BILL-2026-002-1756500001"
	bill := seedBillWithOrder(t, db, orderID)

	body := map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": "settlement",
	}
	for i := 0; i < 2; i++ {
		if err := HandleBillPaymentWebhook(db, body, time.UTC); err != nil {
			t.Fatalf("webhook call %d: %v", i+1, err)
		}
	}

	var receipts int64
	db.Model(&model.Receipt{}).Where("receipt_bill_id = ?", bill.BillID).Count(&receipts)
	if receipts != 1 {
		t.Fatalf("receipt rows = %d after duplicate notification, want 1", receipts)
	}
}

func TestWebhookExpireLeavesBillUnpaid(t *testing.T) {
	db := openTestDB(t)
	orderID := "BILL-2026-003-1756500002"
	bill := seedBillWithOrder(t, db, orderID)

	body := map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": "expire",
	}
	if err := HandleBillPaymentWebhook(db, body, time.UTC); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	var reloaded model.Bill
	if err := db.First(&reloaded, "bill_id = ?", bill.BillID).Error; err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	if reloaded.BillStatus != model.BillStatusUnpaid {
		t.Fatalf("bill status = %q, want unpaid after expire", reloaded.BillStatus)
	}
}

func TestWebhookUnknownOrderFails(t *testing.T) {
	db := openTestDB(t)

	body := map[string]interface{}{
		"order_id":           "BILL-missing-1756500003",
		"transaction_status": "settlement",
	}
	if err := HandleBillPaymentWebhook(db, body, time.UTC); err == nil {
		t.Fatal("unknown order accepted, want error")
	}
}

func TestWebhookMalformedPayloadFails(t *testing.T) {
	db := openTestDB(t)

	if err := HandleBillPaymentWebhook(db, map[string]interface{}{"foo": "bar"}, time.UTC); err == nil {
		t.Fatal("payload without order_id accepted, want error")
	}
}

func TestNewPaymentOrderIDEmbedsBillNumber(t *testing.T) {
	id := NewPaymentOrderID("2026-009")
	if len(id) == 0 || id[:5] != "BILL-" {
		t.Fatalf("order id = %q", id)
	}
	if want := "BILL-2026-009-"; id[:len(want)] != want {
		t.Fatalf("order id = %q, want prefix %q", id, want)
	}
}
