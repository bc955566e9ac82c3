package entity

import (
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.New(60, 0)

// LineItemTotal computes (hours + minutes/60) * rate rounded to cents.
// Negative time components count as zero, so the result is never negative
// for a non-negative rate.
func LineItemTotal(hours, minutes int, rate decimal.Decimal) decimal.Decimal {
	if hours < 0 {
		hours = 0
	}

	if minutes < 0 {
		minutes = 0
	}

	t := decimal.New(int64(hours), 0).
		Add(decimal.New(int64(minutes), 0).Div(minutesPerHour))

	return t.Mul(rate).Round(2)
}

// Subtotal sums the stored totals of the line items. It deliberately does not
// recompute from hours and rate: the total field may be manually overridden.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total)
	}

	return sum
}

// AdjustmentsTotal sums the signed adjustment amounts.
func AdjustmentsTotal(adjustments []Adjustment) decimal.Decimal {
	sum := decimal.Zero
	for _, adj := range adjustments {
		sum = sum.Add(adj.Amount)
	}

	return sum
}

func GrandTotal(subtotal, adjustmentsTotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(adjustmentsTotal)
}
