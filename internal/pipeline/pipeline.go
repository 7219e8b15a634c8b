// Package pipeline sequences the text stages: normalize, extract, classify,
// validate, score. It is the only piece that touches every core component.
package pipeline

import (
	"log/slog"

	"github.com/docuscan/invoice-extractor/internal/extract"
	"github.com/docuscan/invoice-extractor/internal/format"
)

// Processor assembles one Record per OCR text input. Stateless; safe for
// concurrent use across invoices.
type Processor struct {
	logger    *slog.Logger
	extractor *extract.Extractor
}

func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		extractor: extract.NewExtractor(logger),
	}
}

// Process runs the full pipeline over raw OCR text and returns the
// assembled record. Total over its input: empty or garbage text yields a
// record with empty fields, zero confidence and the unknown format, never
// an error.
func (p *Processor) Process(rawText string) *extract.Record {
	corrected := extract.NormalizeText(rawText)

	rec := p.extractor.Extract(corrected)

	fm := format.Detect(corrected)
	rec.Format = &fm

	rec.Warnings = extract.Validate(rec)
	rec.Confidence = extract.Score(rec)

	p.logger.Debug("pipeline complete",
		"format", fm.Name,
		"format_supported", fm.Supported,
		"confidence", rec.Confidence,
		"items", len(rec.Items),
		"warnings", len(rec.Warnings),
	)
	return rec
}
