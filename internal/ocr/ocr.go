// Package ocr adapts the external OCR engine behind the contract the
// pipeline needs: image in, plain text out. The engine itself is a black
// box invoked as a subprocess; no pixel analysis happens here.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/docuscan/invoice-extractor/constants"
	"github.com/docuscan/invoice-extractor/internal/common"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language    string // default "eng"
	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text; 0 = engine default
}

// Result is the outcome of one text extraction.
type Result struct {
	Text       string
	SourceType string // constants.IMAGE | constants.TEXT
	Method     string // "image-ocr" | "text-passthrough"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32 // heuristic 0..1, not an engine-reported probability
}

type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger}
}

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

// Extract picks a strategy based on file extension: images go through the
// OCR binary, .txt files carry already-extracted text and pass through.
func (e *Engine) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text extraction", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.TEXT:
		res, err := e.readText(path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return Result{}, common.NewAppError("OCR_UNSUPPORTED",
			fmt.Sprintf("unsupported extension: %q", ext), common.ErrUnsupported)
	}
}

func (e *Engine) extractImage(ctx context.Context, path string) (Result, error) {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return Result{SourceType: constants.IMAGE, Warnings: []string{string(errb)}},
			fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")

	return Result{
		Text:       txt,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.Language,
		Confidence: heuristicConfidence(txt),
	}, nil
}

func (e *Engine) readText(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{SourceType: constants.TEXT}, fmt.Errorf("read text: %w", err)
	}
	txt := string(b)
	return Result{
		Text:       txt,
		SourceType: constants.TEXT,
		Method:     "text-passthrough",
		Language:   e.cfg.Language,
		Confidence: heuristicConfidence(txt),
	}, nil
}
