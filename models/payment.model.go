package models

// Payment methods offered at checkout
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentBankTransfer   = "bank_transfer"
	PaymentCard           = "card"
)

var paymentLabels = map[string]string{
	PaymentCashOnDelivery: "Cash on delivery",
	PaymentBankTransfer:   "Bank transfer",
	PaymentCard:           "Card on delivery",
}

// PaymentLabel returns a human readable label, falling back to the raw value.
func PaymentLabel(method string) string {
	if label, ok := paymentLabels[method]; ok {
		return label
	}
	return method
}
