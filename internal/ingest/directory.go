// Package ingest walks a directory and selects the invoice files a batch
// run should process, deduplicating by content hash.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/docuscan/invoice-extractor/constants"
)

// FileResult is the per-file outcome of a directory scan.
type FileResult struct {
	Path         string
	FileID       string
	Deduplicated bool
	HashHex      string
	Err          string
}

// DirStats aggregates a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor assigns stable per-run IDs to files and tracks content hashes so
// duplicate files are processed once. State lives only for the lifetime of
// one Ingestor; nothing persists.
type Ingestor struct {
	logger *slog.Logger
	seen   map[string]string // content hash -> file ID
}

func NewIngestor(logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{logger: logger, seen: map[string]string{}}
}

// IngestDirectory walks root, filters by includeExts (or the default set),
// skips hidden files if requested, and hashes each match. Returns per-file
// results plus aggregate stats. Walk errors on individual entries are
// recorded and do not abort the scan.
func (u *Ingestor) IngestDirectory(ctx context.Context, root string, includeExts []string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			e = constants.NormalizeExt(strings.TrimSpace(e))
			if e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := exts[ext]; !ok {
			return nil
		}
		stats.Matched++

		hashHex, err := hashFile(path)
		if err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		fileID, dedup := u.seen[hashHex]
		if !dedup {
			fileID = uuid.New().String()
			u.seen[hashHex] = fileID
		}

		results = append(results, FileResult{
			Path:         path,
			FileID:       fileID,
			Deduplicated: dedup,
			HashHex:      hashHex,
		})
		stats.Succeeded++
		if dedup {
			stats.Deduplicated++
			u.logger.Debug("duplicate content, reusing file id", "path", path, "file_id", fileID)
		}
		return nil
	})

	if err != nil {
		return results, stats, err
	}
	return results, stats, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
