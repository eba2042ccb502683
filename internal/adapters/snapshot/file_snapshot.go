package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"fxsummary/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

const defaultMemoTTL = 5 * time.Minute

type snapshotFile struct {
	Rates map[string]map[string]float64 `json:"rates"`
}

// FileSnapshot serves the pre-saved rate series used once the live source is exhausted.
// Decoded files are memoized by path, size and mtime, so a replaced file is picked up
// on the next call while a deleted one is reported as missing.
type FileSnapshot struct {
	path    string
	memo    *ristretto.Cache
	memoTTL time.Duration
}

func NewFileSnapshot(path string, memoTTL time.Duration) (*FileSnapshot, error) {
	memo, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot memo failed: %w", err)
	}
	if memoTTL <= 0 {
		memoTTL = defaultMemoTTL
	}
	return &FileSnapshot{path: path, memo: memo, memoTTL: memoTTL}, nil
}

// GetRates returns the full snapshot series without any date filtering.
func (s *FileSnapshot) GetRates(ctx context.Context) (domain.RateSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotMissing, s.path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrSnapshotCorrupt, s.path, err)
	}

	key := memoKey(s.path, info)
	if v, ok := s.memo.Get(key); ok {
		if series, ok := v.(domain.RateSeries); ok {
			return series.Clone(), nil
		}
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotMissing, s.path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrSnapshotCorrupt, s.path, err)
	}

	var file snapshotFile
	if err = json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSnapshotCorrupt, s.path, err)
	}
	if file.Rates == nil {
		return nil, fmt.Errorf("%w: %s has no rates field", domain.ErrSnapshotCorrupt, s.path)
	}

	series := domain.RateSeries(file.Rates)
	if !s.memo.SetWithTTL(key, series.Clone(), 1, s.memoTTL) {
		logrus.WithField("path", s.path).Debug("Snapshot memo rejected entry")
	}
	logrus.WithFields(logrus.Fields{"path": s.path, "dates": len(series)}).Info("Loaded rate snapshot")
	return series, nil
}

func (s *FileSnapshot) Close() { s.memo.Close() }

func memoKey(path string, info fs.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}
