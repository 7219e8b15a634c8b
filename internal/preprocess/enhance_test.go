package preprocess

import (
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func lowContrastGradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// values straddle the midpoint in a narrow band
			img.Pix[y*img.Stride+x] = uint8(105 + (x % 48))
		}
	}
	return img
}

var _ = Describe("Apply", func() {
	When("no step is recommended", func() {
		It("only converts to grayscale", func() {
			out, steps := Apply(uniformGray(16, 16, 128), Decision{}, nil)
			Expect(out).NotTo(BeNil())
			Expect(steps).To(Equal([]string{"grayscale"}))
		})
	})

	When("contrast enhancement is recommended", func() {
		It("stretches a low-contrast image and reports the step", func() {
			img := lowContrastGradient(64, 64)
			before := AnalyzeQuality(img)

			out, steps := Apply(img, Decision{EnhanceContrast: true}, nil)
			Expect(steps).To(Equal([]string{"contrast-enhancement"}))

			after := AnalyzeQuality(out)
			Expect(after.Contrast).To(BeNumerically(">", before.Contrast))
		})
	})

	When("enhancement would reduce contrast", func() {
		It("falls back to the plain grayscale image", func() {
			// isolated speckles vanish under the median filter, so the
			// filtered image has less contrast than the grayscale original
			img := uniformGray(40, 40, 0)
			for y := 2; y < 40; y += 5 {
				for x := 2; x < 40; x += 5 {
					img.Pix[y*img.Stride+x] = 255
				}
			}

			out, steps := Apply(img, Decision{Denoise: true}, nil)
			Expect(steps).To(Equal([]string{"grayscale"}))

			m := AnalyzeQuality(out)
			Expect(m.Contrast).To(BeNumerically(">", 0))
		})
	})

	It("preserves the image dimensions", func() {
		out, _ := Apply(lowContrastGradient(40, 20), Decision{EnhanceContrast: true, Denoise: false}, nil)
		b := out.Bounds()
		Expect(b.Dx()).To(Equal(40))
		Expect(b.Dy()).To(Equal(20))
	})
})
