package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docuscan/invoice-extractor/constants"
	"github.com/docuscan/invoice-extractor/internal/common"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	name string
	args []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return s.stdout, s.stderr, s.err
}

var _ = Describe("Engine", func() {
	var (
		engine *Engine
		runner *stubRunner
		tmpDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "ocr-test-*")
		Expect(err).NotTo(HaveOccurred())

		runner = &stubRunner{}
		engine = NewEngine(Config{}, nil)
		engine.runner = runner
	})

	AfterEach(func() {
		Expect(os.RemoveAll(tmpDir)).To(Succeed())
	})

	Describe("text passthrough", func() {
		It("returns the file contents verbatim", func() {
			path := filepath.Join(tmpDir, "invoice.txt")
			body := "Receipt #4521\nTotal Amount: $150.00\n"
			Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())

			res, err := engine.Extract(context.Background(), path)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal(body))
			Expect(res.SourceType).To(Equal(constants.TEXT))
			Expect(res.Method).To(Equal("text-passthrough"))
		})

		It("fails on a missing file", func() {
			_, err := engine.Extract(context.Background(), filepath.Join(tmpDir, "nope.txt"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("image OCR", func() {
		It("invokes the binary with the expected arguments", func() {
			runner.stdout = []byte("Receipt #4521\n")

			res, err := engine.Extract(context.Background(), "/data/scan.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.SourceType).To(Equal(constants.IMAGE))
			Expect(res.Method).To(Equal("image-ocr"))
			Expect(runner.name).To(Equal("tesseract"))
			Expect(runner.args).To(Equal([]string{"/data/scan.png", "stdout", "-l", "eng"}))
		})

		It("appends tessdata and psm flags when configured", func() {
			engine = NewEngine(Config{TessdataDir: "/usr/share/tessdata", PSM: 6}, nil)
			engine.runner = runner

			_, err := engine.Extract(context.Background(), "scan.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Join(runner.args, " ")).To(ContainSubstring("--tessdata-dir /usr/share/tessdata"))
			Expect(strings.Join(runner.args, " ")).To(ContainSubstring("--psm 6"))
		})

		It("strips box-drawing noise lines from the output", func() {
			runner.stdout = []byte("Receipt #4521\n_____\nTotal Amount: $5.00\n")

			res, err := engine.Extract(context.Background(), "scan.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).NotTo(ContainSubstring("_____"))
			Expect(res.Text).To(ContainSubstring("Receipt #4521"))
		})

		It("surfaces the engine's stderr as a warning on failure", func() {
			runner.err = errors.New("exit status 1")
			runner.stderr = []byte("could not open image")

			res, err := engine.Extract(context.Background(), "scan.png")
			Expect(err).To(HaveOccurred())
			Expect(res.Warnings).To(ContainElement("could not open image"))
		})
	})

	Describe("unsupported extensions", func() {
		It("rejects them with a typed error", func() {
			_, err := engine.Extract(context.Background(), "invoice.pdf")
			Expect(err).To(HaveOccurred())
			var appErr *common.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(errors.Is(err, common.ErrUnsupported)).To(BeTrue())
		})
	})
})

var _ = Describe("heuristicConfidence", func() {
	It("starts at the base for featureless text", func() {
		Expect(heuristicConfidence("hello")).To(BeNumerically("~", 0.2, 0.001))
	})

	It("credits date, currency and amount signals", func() {
		txt := "March 15, 2050 total $150.00"
		Expect(heuristicConfidence(txt)).To(BeNumerically("~", 0.7, 0.001))
	})

	It("adds a length bonus past 120 characters", func() {
		long := strings.Repeat("receipt 2050 $1.00 ", 10)
		Expect(heuristicConfidence(long)).To(BeNumerically("~", 0.8, 0.001))
	})

	It("never exceeds 1.0", func() {
		long := strings.Repeat("usd 2050 $9.99 ", 20)
		Expect(heuristicConfidence(long)).To(BeNumerically("<=", 1.0))
	})
})
