// Package extract recovers structured invoice fields from OCR plain text.
//
// Every function here is a pure, total transform over its text input: field
// extractors either match or leave the field empty, line-item rows either
// pass the arithmetic cross-check or are dropped, and nothing panics or
// returns an error for malformed (or empty) text. That makes concurrent
// batch runs safe with no synchronization.
package extract

import "log/slog"

// Extractor runs the field and line-item pattern matchers over normalized
// OCR text. It is stateless; the logger is the only dependency.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract populates the scalar fields and line items of a fresh Record.
// Confidence, warnings and format info are left for the later pipeline
// stages. Misses are traced at debug level, never escalated.
func (e *Extractor) Extract(text string) *Record {
	rec := &Record{
		Items:    []LineItem{},
		Warnings: []string{},
	}

	rec.ReceiptNumber = receiptNumber(text)
	if rec.ReceiptNumber == "" {
		e.logger.Debug("receipt number not found")
	}

	rec.Date = dateField(text)
	if rec.Date == "" {
		e.logger.Debug("date not found")
	}

	rec.BillTo.Name = billToName(text)
	if rec.BillTo.Name == "" {
		e.logger.Debug("bill-to name not found")
	}

	rec.BillTo.Email = billToEmail(text)
	if rec.BillTo.Email == "" {
		e.logger.Debug("bill-to email not found")
	}

	rec.TotalAmount = totalAmount(text)
	if rec.TotalAmount == nil {
		e.logger.Debug("total amount not found")
	}

	rec.PaymentMethod = paymentMethod(text)
	if rec.PaymentMethod == "" {
		e.logger.Debug("payment method not found")
	}

	rec.Items = e.lineItems(text)
	e.logger.Debug("extraction done",
		"receipt_number", rec.ReceiptNumber,
		"items", len(rec.Items),
	)
	return rec
}
