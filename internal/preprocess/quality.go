// Package preprocess probes image quality and applies an adaptive
// enhancement before OCR. The extraction core never sees any of this; it
// only benefits from cleaner OCR text.
package preprocess

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// Quality thresholds, taken from field tuning against the dominant invoice
// layout. Brightness and contrast are over the grayscale image; sharpness
// is the variance of the Laplacian response.
const (
	lowContrast     = 40.0
	minBrightness   = 80.0
	maxBrightness   = 200.0
	blurrySharpness = 100.0
	noisySharpness  = 500.0
)

// Metrics are the quality measurements of one image.
type Metrics struct {
	Brightness float64 `json:"brightness"` // grayscale mean, 0..255
	Contrast   float64 `json:"contrast"`   // grayscale std dev
	Sharpness  float64 `json:"sharpness"`  // Laplacian variance
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

func (m Metrics) String() string {
	return fmt.Sprintf("brightness=%.1f contrast=%.1f sharpness=%.1f size=%dx%d",
		m.Brightness, m.Contrast, m.Sharpness, m.Width, m.Height)
}

// Decision is the recommended transform for an image.
type Decision struct {
	EnhanceContrast bool
	Denoise         bool
	Reasons         []string
}

// NeedsWork reports whether any enhancement step is recommended.
func (d Decision) NeedsWork() bool {
	return d.EnhanceContrast || d.Denoise
}

var laplacianKernel = func() *convolution.Kernel {
	k := convolution.NewKernel(3, 3)
	k.Matrix = []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}
	return k
}()

// AnalyzeQuality measures brightness, contrast and sharpness of img.
func AnalyzeQuality(img image.Image) Metrics {
	gray := imaging.Grayscale(img)
	mean, std := grayStats(gray)

	lap := convolution.Convolve(gray, laplacianKernel, &convolution.Options{})
	_, lapStd := grayStats(lap)

	b := img.Bounds()
	return Metrics{
		Brightness: mean,
		Contrast:   std,
		Sharpness:  lapStd * lapStd,
		Width:      b.Dx(),
		Height:     b.Dy(),
	}
}

// ShouldEnhance decides which preprocessing steps would help, based on the
// measured metrics. Blurry images are never denoised; denoising them makes
// OCR worse.
func ShouldEnhance(m Metrics) Decision {
	var d Decision

	if m.Contrast < lowContrast {
		d.EnhanceContrast = true
		d.Reasons = append(d.Reasons, fmt.Sprintf("low contrast (%.1f)", m.Contrast))
	}
	if m.Brightness < minBrightness || m.Brightness > maxBrightness {
		d.EnhanceContrast = true
		d.Reasons = append(d.Reasons, fmt.Sprintf("poor brightness (%.1f)", m.Brightness))
	}

	if m.Sharpness < blurrySharpness {
		d.Reasons = append(d.Reasons, fmt.Sprintf("image is blurry (%.1f)", m.Sharpness))
	} else if m.Sharpness < noisySharpness {
		d.Denoise = true
		d.Reasons = append(d.Reasons, fmt.Sprintf("some noise detected (%.1f)", m.Sharpness))
	}

	return d
}

// grayStats returns the mean and standard deviation of the luminance of img.
func grayStats(img image.Image) (mean, std float64) {
	b := img.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += float64(g.Y)
		}
	}
	mean = sum / n

	var sq float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			d := float64(g.Y) - mean
			sq += d * d
		}
	}
	std = math.Sqrt(sq / n)
	return mean, std
}
