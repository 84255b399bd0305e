package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go-storefront/models"
)

// FormatMoney renders an amount with the store currency, e.g. "235 SAR".
func FormatMoney(amount float64, currency string) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// OrderMessage is the multi-line order summary sent to the store.
func OrderMessage(order models.Order, settings models.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Name: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Customer.Phone)
	if order.Customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", order.Customer.Address)
	}
	fmt.Fprintf(&b, "Payment: %s\n", models.PaymentLabel(order.PaymentMethod))
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		line := models.Cart{{Price: item.Price, Quantity: item.Quantity}}.Total()
		fmt.Fprintf(&b, "- %s x%d = %s\n", item.Name, item.Quantity, FormatMoney(line, settings.Currency))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatMoney(order.Subtotal, settings.Currency))
	fmt.Fprintf(&b, "Delivery: %s\n", FormatMoney(order.DeliveryFee, settings.Currency))
	fmt.Fprintf(&b, "Total: %s", FormatMoney(order.Total, settings.Currency))
	if order.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", order.Notes)
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link that opens a chat with phone and the
// message prefilled. Non-digit characters in phone are dropped; an empty
// phone lets the user choose the recipient.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
