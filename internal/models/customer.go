package models

// Customer is a billed party. Name and email are required.
type Customer struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	// Relations
	Invoices []Invoice `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

// CustomerSummary is a customer row enriched with invoice aggregates.
// Totals are in cents and are zero, never null, for customers without invoices.
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  int64  `json:"total_pending"`
	TotalPaid     int64  `json:"total_paid"`
}

// CustomerOption feeds the customer select of invoice forms.
type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
