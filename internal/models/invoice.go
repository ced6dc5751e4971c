package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date encoding used for Invoice.Date.
const DateLayout = "2006-01-02"

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// InvoiceStatuses lists every accepted status value.
var InvoiceStatuses = []string{string(InvoiceStatusPending), string(InvoiceStatusPaid)}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice represents a billing invoice. Amount is stored in cents.
type Invoice struct {
	ID         string        `gorm:"primaryKey;type:uuid" json:"id"`
	CustomerID string        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Status     InvoiceStatus `gorm:"size:7;not null" json:"status"`
	Date       string        `gorm:"size:10;not null;index" json:"date"`
}

// IsPaid returns true if the invoice has been paid.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// InvoiceView is an invoice joined with its customer's display fields.
type InvoiceView struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Date       string        `json:"date"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// InvoiceForm is the edit-form projection of an invoice.
// Amount is expressed in major units (dollars).
type InvoiceForm struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
}

// MarshalJSON writes Amount as a JSON number.
func (f InvoiceForm) MarshalJSON() ([]byte, error) {
	type plain InvoiceForm
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain: plain(f), Amount: json.Number(f.Amount.String())})
}

// Revenue is the invoiced total of one calendar month, in cents.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// CardSummary holds the dashboard overview counters. Totals are in cents.
type CardSummary struct {
	InvoiceCount  int64 `json:"invoice_count"`
	CustomerCount int64 `json:"customer_count"`
	PaidTotal     int64 `json:"paid_total"`
	PendingTotal  int64 `json:"pending_total"`
}
