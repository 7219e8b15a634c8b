package preprocess

import (
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Apply performs the recommended transform and returns the processed image
// plus the names of the steps applied. OCR does not need color, so the
// image is always converted to grayscale first. When enhancement ends up
// reducing contrast, the plain grayscale image wins.
func Apply(img image.Image, d Decision, logger *slog.Logger) (image.Image, []string) {
	if logger == nil {
		logger = slog.Default()
	}

	gray := imaging.Grayscale(img)
	var processed image.Image = gray
	var steps []string

	if d.EnhanceContrast {
		processed = imaging.AdjustSigmoid(processed, 0.5, 5.0)
		steps = append(steps, "contrast-enhancement")
	}
	if d.Denoise {
		processed = effect.Median(processed, 3.0)
		steps = append(steps, "denoise")
	}
	if len(steps) == 0 {
		logger.Debug("no enhancement needed, grayscale only")
		return gray, []string{"grayscale"}
	}

	_, before := grayStats(gray)
	_, after := grayStats(processed)
	if after < before {
		logger.Debug("enhancement reduced contrast, keeping grayscale",
			"before", before, "after", after)
		return gray, []string{"grayscale"}
	}

	logger.Debug("enhancement applied",
		"steps", steps, "contrast_before", before, "contrast_after", after)
	return processed, steps
}
