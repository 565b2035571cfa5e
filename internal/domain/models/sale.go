package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode enumerates accepted tender types.
type PaymentMode string

const (
	PaymentCash PaymentMode = "Cash"
	PaymentUPI  PaymentMode = "UPI"
	PaymentCard PaymentMode = "Card"
)

// Valid reports whether the mode belongs to the closed set.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	default:
		return false
	}
}

// Sale is an immutable record of one completed sale. Total is fixed at the
// product price in effect when the sale was recorded.
type Sale struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	ProductID     string          `json:"product_id"`
	Qty           int             `json:"qty"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	Total         decimal.Decimal `json:"total"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
}

// SaleRequest carries the inputs of a sale from the presentation layer.
type SaleRequest struct {
	ProductID     string      `json:"product_id" binding:"required"`
	Qty           int         `json:"qty" binding:"required"`
	PaymentMode   PaymentMode `json:"payment_mode"`
	CustomerPhone string      `json:"customer_phone"`
	SendBill      *bool       `json:"send_bill,omitempty"`
}

// WantsBill reports whether a bill should be sent for the request.
func (r SaleRequest) WantsBill() bool {
	if r.CustomerPhone == "" {
		return false
	}
	return r.SendBill == nil || *r.SendBill
}
