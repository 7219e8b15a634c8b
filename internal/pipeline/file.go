package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/docuscan/invoice-extractor/constants"
	"github.com/docuscan/invoice-extractor/internal/extract"
	"github.com/docuscan/invoice-extractor/internal/ocr"
	"github.com/docuscan/invoice-extractor/internal/preprocess"
)

// FileProcessor coordinates the per-file flow: quality probe, optional
// enhancement, OCR, then the text pipeline. It owns all the I/O the text
// stages are not allowed to do.
type FileProcessor struct {
	logger     *slog.Logger
	engine     *ocr.Engine
	text       *Processor
	preprocess bool
	tempDir    string
}

// FileOutcome is everything one file run produced.
type FileOutcome struct {
	Record        *extract.Record
	OCRText       string
	Method        string
	OCRConfidence float32
	Quality       *preprocess.Metrics
	StepsApplied  []string
	Duration      time.Duration
}

func NewFileProcessor(logger *slog.Logger, engine *ocr.Engine, enablePreprocess bool, tempDir string) *FileProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProcessor{
		logger:     logger,
		engine:     engine,
		text:       NewProcessor(logger),
		preprocess: enablePreprocess,
		tempDir:    tempDir,
	}
}

// ProcessPath runs the full flow for one invoice file. Images may be
// enhanced first; .txt files skip straight to the text pipeline. The
// returned error covers only the I/O-bearing steps; the text stages
// themselves cannot fail.
func (p *FileProcessor) ProcessPath(ctx context.Context, path string) (FileOutcome, error) {
	start := time.Now()
	var out FileOutcome

	ocrPath := path
	ext := constants.NormalizeExt(filepath.Ext(path))

	if p.preprocess && constants.MapExtToFormat(ext) == constants.IMAGE {
		enhanced, metrics, steps, cleanup, err := p.enhanceImage(path)
		if err != nil {
			// Enhancement is best effort; OCR the original on failure.
			p.logger.Warn("preprocess failed, using original image", "path", path, "error", err)
		} else {
			out.Quality = &metrics
			out.StepsApplied = steps
			if enhanced != "" {
				defer cleanup()
				ocrPath = enhanced
			}
		}
	}

	res, err := p.engine.Extract(ctx, ocrPath)
	if err != nil {
		out.Duration = time.Since(start)
		return out, fmt.Errorf("extract text: %w", err)
	}

	out.OCRText = res.Text
	out.Method = res.Method
	out.OCRConfidence = res.Confidence
	out.Record = p.text.Process(res.Text)
	out.Duration = time.Since(start)

	p.logger.Info("file processed",
		"path", path,
		"method", res.Method,
		"ocr_confidence", res.Confidence,
		"extraction_confidence", out.Record.Confidence,
	)
	return out, nil
}

// enhanceImage probes quality and, when recommended, writes the enhanced
// image to a temp file for the OCR engine. Returns an empty path when the
// original image should be used as-is.
func (p *FileProcessor) enhanceImage(path string) (string, preprocess.Metrics, []string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", preprocess.Metrics{}, nil, nil, fmt.Errorf("open image: %w", err)
	}

	metrics := preprocess.AnalyzeQuality(img)
	decision := preprocess.ShouldEnhance(metrics)
	p.logger.Debug("image quality", "path", path, "metrics", metrics.String(), "reasons", decision.Reasons)

	if !decision.NeedsWork() {
		return "", metrics, []string{"none"}, nil, nil
	}

	processed, steps := preprocess.Apply(img, decision, p.logger)

	tmpDir, err := os.MkdirTemp(p.tempDir, "invext-*")
	if err != nil {
		return "", metrics, steps, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	outPath := filepath.Join(tmpDir, "page.png")
	if err := imaging.Save(processed, outPath); err != nil {
		cleanup()
		return "", metrics, steps, nil, fmt.Errorf("save enhanced image: %w", err)
	}
	return outPath, metrics, steps, cleanup, nil
}
