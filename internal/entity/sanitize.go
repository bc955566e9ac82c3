package entity

import (
	"strings"
)

// SanitizeLineItems drops blank rows the editor leaves behind. A row survives
// when it carries any signal: a description, time, a rate, or a total.
func SanitizeLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))

	for _, item := range items {
		hasText := strings.TrimSpace(item.Description) != ""
		hasTime := item.Hours > 0 || item.Minutes > 0 || item.Rate.IsPositive()
		hasTotal := item.Total.IsPositive()

		if !hasText && !hasTime && !hasTotal {
			continue
		}

		if item.Hours < 0 {
			item.Hours = 0
		}

		if item.Minutes < 0 {
			item.Minutes = 0
		}

		out = append(out, item)
	}

	return out
}

// SanitizeAdjustments keeps adjustments that have a description or a non-zero
// amount. Negative amounts (discounts) are valid.
func SanitizeAdjustments(adjustments []Adjustment) []Adjustment {
	out := make([]Adjustment, 0, len(adjustments))

	for _, adj := range adjustments {
		if strings.TrimSpace(adj.Description) == "" && adj.Amount.IsZero() {
			continue
		}

		out = append(out, adj)
	}

	return out
}

// SanitizePaymentMethods normalizes payment methods before persisting:
// unknown types become "other", wire transfers never render their value as a
// link, and an uploaded QR image clears any QR URL (at most one is kept).
func SanitizePaymentMethods(methods []PaymentMethod) []PaymentMethod {
	out := make([]PaymentMethod, 0, len(methods))

	for _, m := range methods {
		if !m.Type.IsValid() {
			m.Type = PaymentMethodOther
		}

		if m.Type == PaymentMethodWireTransfer {
			m.IsLink = false
		}

		if m.QRCodeData != "" {
			m.QRCodeURL = ""
		}

		out = append(out, m)
	}

	return out
}
