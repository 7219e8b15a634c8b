package ingest

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IngestDirectory", func() {
	var (
		ingestor *Ingestor
		root     string
	)

	write := func(rel, body string) string {
		path := filepath.Join(root, rel)
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "ingest-test-*")
		Expect(err).NotTo(HaveOccurred())
		ingestor = NewIngestor(nil)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(root)).To(Succeed())
	})

	It("rejects an empty root", func() {
		_, _, err := ingestor.IngestDirectory(context.Background(), "  ", nil, true)
		Expect(err).To(HaveOccurred())
	})

	It("matches only the allowed extensions by default", func() {
		write("a.png", "image-a")
		write("b.txt", "text-b")
		write("c.pdf", "pdf-c")
		write("d.exe", "bin-d")

		results, stats, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(stats.Matched).To(Equal(uint32(2)))
		Expect(stats.Succeeded).To(Equal(uint32(2)))
		Expect(stats.Failed).To(BeZero())
	})

	It("honors an explicit extension filter", func() {
		write("a.png", "image-a")
		write("b.txt", "text-b")

		results, stats, err := ingestor.IngestDirectory(context.Background(), root, []string{".txt"}, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].Path).To(HaveSuffix("b.txt"))
		Expect(stats.Matched).To(Equal(uint32(1)))
	})

	It("assigns one file ID per distinct content", func() {
		write("a.txt", "same content")
		write("b.txt", "same content")
		write("c.txt", "different content")

		results, stats, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(stats.Deduplicated).To(Equal(uint32(1)))

		byPath := map[string]FileResult{}
		for _, r := range results {
			byPath[filepath.Base(r.Path)] = r
		}
		Expect(byPath["b.txt"].FileID).To(Equal(byPath["a.txt"].FileID))
		Expect(byPath["b.txt"].Deduplicated).To(BeTrue())
		Expect(byPath["a.txt"].Deduplicated).To(BeFalse())
		Expect(byPath["c.txt"].FileID).NotTo(Equal(byPath["a.txt"].FileID))
	})

	It("hashes content with sha256", func() {
		write("a.txt", "hello")
		results, _, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		// sha256("hello")
		Expect(results[0].HashHex).To(Equal("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"))
	})

	It("skips hidden files and directories when asked", func() {
		write("visible.txt", "a")
		write(".hidden.txt", "b")
		write(".hiddendir/inner.txt", "c")

		results, _, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].Path).To(HaveSuffix("visible.txt"))
	})

	It("keeps hidden files when not asked to skip", func() {
		write("visible.txt", "a")
		write(".hidden.txt", "b")

		results, _, err := ingestor.IngestDirectory(context.Background(), root, nil, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
	})

	It("recurses into subdirectories", func() {
		write("top.txt", "a")
		write("nested/deep/bottom.txt", "b")

		results, _, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
	})

	It("remembers hashes across scans of the same ingestor", func() {
		write("a.txt", "shared")
		first, _, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())

		second, stats, err := ingestor.IngestDirectory(context.Background(), root, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(second[0].FileID).To(Equal(first[0].FileID))
		Expect(second[0].Deduplicated).To(BeTrue())
		Expect(stats.Deduplicated).To(Equal(uint32(1)))
	})

	It("stops when the context is cancelled", func() {
		write("a.txt", "a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := ingestor.IngestDirectory(ctx, root, nil, true)
		Expect(err).To(MatchError(context.Canceled))
	})
})
