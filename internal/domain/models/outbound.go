package models

import "time"

// Message templates used by the notification log.
const (
	TemplateCustomerBill = "Customer Bill"
	TemplateDailySummary = "Daily Summary"
)

// Delivery statuses recorded against each notification.
const (
	StatusSent   = "SENT"
	StatusFailed = "FAILED"
)

// NotificationLogEntry records one synthesized outbound message.
type NotificationLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	To        string    `json:"to"`
	Template  string    `json:"template"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
}

// OutboundMessageRequest is a message handed to a delivery sink.
type OutboundMessageRequest struct {
	To       string `json:"to" binding:"required"`
	Template string `json:"template"`
	Message  string `json:"message" binding:"required"`
}
