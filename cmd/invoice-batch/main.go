package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/docuscan/invoice-extractor/constants"
	"github.com/docuscan/invoice-extractor/internal/common"
	"github.com/docuscan/invoice-extractor/internal/extract"
	"github.com/docuscan/invoice-extractor/internal/ingest"
	"github.com/docuscan/invoice-extractor/internal/ocr"
	"github.com/docuscan/invoice-extractor/internal/pipeline"
	"github.com/docuscan/invoice-extractor/internal/report"
)

func main() {
	fs := ff.NewFlagSet("invoice-batch")
	var (
		dir          = fs.StringLong("dir", "", "directory to process invoices from (required)")
		outDir       = fs.StringLong("out", "", "output directory (default: <dir>/processed)")
		exts         = fs.StringLong("exts", "", "comma-separated extensions to include (default: jpg,jpeg,png,txt)")
		xlsxOut      = fs.StringLong("xlsx", "", "summary XLSX path (default: <out>/summary.xlsx)")
		keepHidden   = fs.BoolLong("keep-hidden", "do not skip hidden files and directories")
		noPreprocess = fs.BoolLong("no-preprocess", "skip image quality probe and enhancement")
		saveOCRText  = fs.BoolLong("save-ocr-text", "write the raw OCR text next to each record")
		verbose      = fs.BoolLong("verbose", "debug logging")
	)
	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *dir == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --dir is required")
		os.Exit(2)
	}
	if *outDir == "" {
		*outDir = filepath.Join(*dir, "processed")
	}
	if *xlsxOut == "" {
		*xlsxOut = filepath.Join(*outDir, "summary.xlsx")
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	var includeExts []string
	if *exts != "" {
		includeExts = strings.Split(*exts, ",")
	}

	ctx := context.Background()
	runID := uuid.New()
	startedAt := time.Now()

	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, logger)
	proc := pipeline.NewFileProcessor(logger, engine,
		cfg.Preprocess.Enabled && !*noPreprocess, cfg.Preprocess.TempDir)
	ingestor := ingest.NewIngestor(logger)
	reporter := report.NewService(logger)

	logger.Info("starting batch run", "run_id", runID, "dir", *dir, "out", *outDir)

	files, stats, err := ingestor.IngestDirectory(ctx, *dir, includeExts, !*keepHidden)
	if err != nil {
		logger.Error("ingest directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("ingestion complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated,
	)

	var entries []report.Entry
	for _, fr := range files {
		if fr.Err != "" {
			entries = append(entries, report.Entry{
				File:     fr.Path,
				Status:   constants.RunStatusFailed,
				Warnings: []string{},
				Error:    fr.Err,
			})
			continue
		}
		if fr.Deduplicated {
			logger.Info("skipping duplicate content", "path", fr.Path, "file_id", fr.FileID)
			continue
		}
		entries = append(entries, processFile(ctx, logger, proc, fr, *outDir, *saveOCRText))
	}

	sum := reporter.BuildSummary(runID, startedAt, time.Now(), entries)

	sumJSON, err := reporter.SummaryJSON(sum)
	if err != nil {
		logger.Error("build summary json", "error", err)
		os.Exit(1)
	}
	sumPath := filepath.Join(*outDir, "summary.json")
	if err := os.WriteFile(sumPath, sumJSON, 0o644); err != nil {
		logger.Error("write summary json", "path", sumPath, "error", err)
		os.Exit(1)
	}

	xlsxBytes, err := reporter.SummaryXLSX(sum)
	if err != nil {
		logger.Error("build summary xlsx", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*xlsxOut, xlsxBytes, 0o644); err != nil {
		logger.Error("write summary xlsx", "path", *xlsxOut, "error", err)
		os.Exit(1)
	}

	logger.Info("batch run complete",
		"run_id", runID,
		"processed", sum.Processed,
		"succeeded", sum.Succeeded,
		"with_warnings", sum.WithWarnings,
		"failed", sum.Failed,
		"summary_json", sumPath,
		"summary_xlsx", *xlsxOut,
	)

	fmt.Printf("Batch run complete\n")
	fmt.Printf("- Processed: %d\n", sum.Processed)
	fmt.Printf("- Succeeded: %d (%d with warnings)\n", sum.Succeeded, sum.WithWarnings)
	fmt.Printf("- Failed: %d\n", sum.Failed)
	fmt.Printf("- Summary: %s\n", sumPath)
}

// processFile runs one invoice through the pipeline and writes its record
// JSON. Failures are per-file; the batch keeps going.
func processFile(ctx context.Context, logger *slog.Logger, proc *pipeline.FileProcessor, fr ingest.FileResult, outDir string, saveOCRText bool) report.Entry {
	entry := report.Entry{
		File:     fr.Path,
		FileID:   fr.FileID,
		Warnings: []string{},
	}

	out, err := proc.ProcessPath(ctx, fr.Path)
	entry.DurationMS = out.Duration.Milliseconds()
	if err != nil {
		logger.Error("process file", "path", fr.Path, "error", err)
		entry.Status = constants.RunStatusFailed
		entry.Error = err.Error()
		return entry
	}

	rec := out.Record
	entry.Confidence = rec.Confidence
	entry.TotalAmount = rec.TotalAmount
	entry.Items = len(rec.Items)
	entry.Warnings = rec.Warnings
	if rec.Format != nil {
		entry.Format = rec.Format.Name
	}
	if len(rec.Warnings) > 0 {
		entry.Status = constants.RunStatusWithWarnings
	} else {
		entry.Status = constants.RunStatusSuccess
	}

	base := strings.TrimSuffix(filepath.Base(fr.Path), filepath.Ext(fr.Path))

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		entry.Status = constants.RunStatusFailed
		entry.Error = err.Error()
		return entry
	}
	if err := extract.ValidateRecordJSON(data); err != nil {
		// Should not happen; surface it loudly rather than ship a bad shape.
		logger.Error("record failed schema validation", "path", fr.Path, "error", err)
		entry.Status = constants.RunStatusFailed
		entry.Error = err.Error()
		return entry
	}

	recPath := filepath.Join(outDir, base+"_structured.json")
	if err := os.WriteFile(recPath, data, 0o644); err != nil {
		entry.Status = constants.RunStatusFailed
		entry.Error = err.Error()
		return entry
	}

	if saveOCRText {
		ocrPath := filepath.Join(outDir, base+"_ocr.txt")
		if err := os.WriteFile(ocrPath, []byte(out.OCRText), 0o644); err != nil {
			logger.Warn("write ocr text", "path", ocrPath, "error", err)
		}
	}

	return entry
}
