package models

import "github.com/shopspring/decimal"

// Currency renders monetary amounts as Symbol followed by a 2-decimal amount.
type Currency struct {
	Symbol string
}

// Format renders amount, e.g. ₹1200.00.
func (c Currency) Format(amount decimal.Decimal) string {
	return c.Symbol + amount.StringFixed(2)
}
