package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/docuscan/invoice-extractor/internal/common"
	"github.com/docuscan/invoice-extractor/internal/extract"
	"github.com/docuscan/invoice-extractor/internal/format"
	"github.com/docuscan/invoice-extractor/internal/ocr"
	"github.com/docuscan/invoice-extractor/internal/pipeline"
)

func main() {
	fs := ff.NewFlagSet("invoice-extract")
	var (
		file         = fs.StringLong("file", "", "invoice image (jpg/png) or OCR text file (.txt) to process")
		lang         = fs.StringLong("lang", "", "OCR language (overrides OCR_LANG)")
		noPreprocess = fs.BoolLong("no-preprocess", "skip image quality probe and enhancement")
		pretty       = fs.BoolLong("pretty", "indent the JSON output")
		recommend    = fs.BoolLong("recommend", "print format recommendations to stderr")
		verbose      = fs.BoolLong("verbose", "debug logging")
	)
	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *file == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --file is required")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *lang != "" {
		cfg.OCR.Language = *lang
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, logger)

	proc := pipeline.NewFileProcessor(logger, engine,
		cfg.Preprocess.Enabled && !*noPreprocess, cfg.Preprocess.TempDir)

	out, err := proc.ProcessPath(ctx, *file)
	if err != nil {
		logger.Error("processing failed", "file", *file, "error", err)
		os.Exit(1)
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(out.Record, "", "  ")
	} else {
		data, err = json.Marshal(out.Record)
	}
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}

	// The emitted JSON is a compatibility contract; refuse to print a shape
	// downstream tools would reject.
	if err := extract.ValidateRecordJSON(data); err != nil {
		logger.Error("record failed schema validation", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(data))

	if *recommend && out.Record.Format != nil {
		for _, r := range format.Recommendations(*out.Record.Format) {
			fmt.Fprintln(os.Stderr, r)
		}
	}
}
