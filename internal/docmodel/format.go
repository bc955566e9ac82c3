package docmodel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatTime renders a duration for a line item row. Zero time is "0h",
// whole hours drop the minute part and vice versa.
func FormatTime(hours, minutes int) string {
	if hours < 0 {
		hours = 0
	}

	if minutes < 0 {
		minutes = 0
	}

	switch {
	case hours == 0 && minutes == 0:
		return "0h"
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// FormatMoney renders an amount as "$1234.50". Negative amounts keep their
// sign after the currency symbol, matching toFixed on the editor side.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("Jan 02, 2006")
}
