// Package report assembles the batch summary: a machine-readable JSON
// document and an XLSX workbook with one row per processed invoice.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/docuscan/invoice-extractor/constants"
)

// Entry is one processed invoice in a batch summary.
type Entry struct {
	File        string              `json:"file"`
	FileID      string              `json:"file_id"`
	Status      constants.RunStatus `json:"status"`
	Confidence  int                 `json:"extraction_confidence"`
	Format      string              `json:"format"`
	TotalAmount *float64            `json:"total_amount,omitempty"`
	Items       int                 `json:"items"`
	Warnings    []string            `json:"warnings"`
	Error       string              `json:"error,omitempty"`
	DurationMS  int64               `json:"duration_ms"`
}

// Summary aggregates one batch run.
type Summary struct {
	RunID             uuid.UUID `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Processed         int       `json:"processed"`
	Succeeded         int       `json:"succeeded"`
	WithWarnings      int       `json:"with_warnings"`
	Failed            int       `json:"failed"`
	AverageConfidence float64   `json:"average_confidence"`
	Entries           []Entry   `json:"entries"`
}

// Service builds batch summaries. Stateless apart from its logger.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildSummary aggregates entries into a Summary for the given run window.
func (s *Service) BuildSummary(runID uuid.UUID, startedAt, finishedAt time.Time, entries []Entry) Summary {
	sum := Summary{
		RunID:      runID,
		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
		Processed:  len(entries),
		Entries:    entries,
	}

	var confTotal int
	var confCount int
	for _, e := range entries {
		switch e.Status {
		case constants.RunStatusSuccess:
			sum.Succeeded++
		case constants.RunStatusWithWarnings:
			sum.Succeeded++
			sum.WithWarnings++
		case constants.RunStatusFailed:
			sum.Failed++
		}
		if e.Status != constants.RunStatusFailed {
			confTotal += e.Confidence
			confCount++
		}
	}
	if confCount > 0 {
		sum.AverageConfidence = float64(confTotal) / float64(confCount)
	}

	s.logger.Info("batch summary built",
		"run_id", runID,
		"processed", sum.Processed,
		"succeeded", sum.Succeeded,
		"with_warnings", sum.WithWarnings,
		"failed", sum.Failed,
		"avg_confidence", sum.AverageConfidence,
	)
	return sum
}

// SummaryJSON renders the summary as indented JSON.
func (s *Service) SummaryJSON(sum Summary) ([]byte, error) {
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("summary json: %w", err)
	}
	return b, nil
}

// SummaryXLSX returns an XLSX workbook (as bytes) with one row per entry.
func (s *Service) SummaryXLSX(sum Summary) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Status",
		"Confidence",
		"Format",
		"Total Amount",
		"Items",
		"Warnings",
		"Duration (ms)",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range sum.Entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.File)
		write(2, string(e.Status))
		write(3, e.Confidence)
		write(4, e.Format)
		if e.TotalAmount != nil {
			write(5, fmt.Sprintf("%.2f", *e.TotalAmount))
		} else {
			write(5, "")
		}
		write(6, e.Items)
		write(7, len(e.Warnings))
		write(8, e.DurationMS)
		write(9, truncate(e.Error, 140))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 40) // file
	_ = f.SetColWidth(sheet, "B", "B", 24) // status
	_ = f.SetColWidth(sheet, "D", "D", 32) // format
	_ = f.SetColWidth(sheet, "I", "I", 48) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
