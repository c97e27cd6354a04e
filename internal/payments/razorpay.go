package payments

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator abstracts Razorpay order creation for testability.
type OrderCreator interface {
	CreateOrder(amountPaise int64, currency, receipt string) (map[string]interface{}, error)
}

// RazorpayCreator creates real orders through the Razorpay SDK.
type RazorpayCreator struct {
	KeyID     string
	KeySecret string
}

func (r *RazorpayCreator) CreateOrder(amountPaise int64, currency, receipt string) (map[string]interface{}, error) {
	client := razorpay.NewClient(r.KeyID, r.KeySecret)
	return client.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
}
