package extract

import (
	"github.com/docuscan/invoice-extractor/internal/format"
)

// BillTo is the customer identity block of an invoice. Name and email are
// extracted independently; either may be empty.
type BillTo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// LineItem is one accepted row of the invoice's item table. Every accepted
// row satisfies quantity * unit_price = total within arithmeticTolerance;
// rows that fail the check are dropped during extraction.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Record is the structured result of one pipeline run over OCR text.
// The JSON key names are a stable contract consumed by downstream tools;
// do not rename them.
type Record struct {
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	Date          string        `json:"date,omitempty"`
	BillTo        BillTo        `json:"bill_to"`
	Items         []LineItem    `json:"items"`
	TotalAmount   *float64      `json:"total_amount,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Confidence    int           `json:"extraction_confidence"`
	Warnings      []string      `json:"validation_warnings"`
	Format        *format.Match `json:"format,omitempty"`
}

// ItemsTotal sums the stated totals of all accepted line items.
func (r *Record) ItemsTotal() float64 {
	var sum float64
	for _, it := range r.Items {
		sum += it.Total
	}
	return sum
}

// HasTotalAmount reports whether a non-zero stated total was extracted.
// A zero total counts as absent, matching the truthiness rule used by
// scoring and validation.
func (r *Record) HasTotalAmount() bool {
	return r.TotalAmount != nil && *r.TotalAmount != 0
}
