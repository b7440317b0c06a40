// file: internals/features/billing/service/midtrans.go
package service

import (
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "maktabi_backend/internals/features/billing/model"
)

var SnapClient snap.Client

// InitMidtrans initializes the Snap client with the server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// NewPaymentOrderID builds the order id embedded in the gateway
// notification, used later to find the bill.
func NewPaymentOrderID(billNumber string) string {
	return fmt.Sprintf("BILL-%s-%d", billNumber, time.Now().Unix())
}

// CreateBillPayment requests a Snap transaction for a bill and returns the
// payment token and redirect URL.
func CreateBillPayment(b *model.Bill, orderID, clientName, clientEmail string) (token, redirectURL string, err error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(b.BillAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: clientName,
			Email: clientEmail,
		},
	}

	resp, respErr := SnapClient.CreateTransaction(req)
	if respErr != nil {
		return "", "", respErr
	}
	return resp.Token, resp.RedirectURL, nil
}
