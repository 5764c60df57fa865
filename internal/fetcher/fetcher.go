package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quaketrack/rbfetch/internal/domain"
	"github.com/quaketrack/rbfetch/internal/logger"
)

const (
	filenamePrefix = "RBF"
	filenameExt    = ".msd"
	stampLayout    = "20060102_150405"
)

// WaveformClient is the network collaborator that performs one bounded
// request against the remote data center.
type WaveformClient interface {
	Fetch(ctx context.Context, sel domain.Selectors, start, end time.Time) ([]byte, error)
}

// Fetcher downloads one window of waveform data and writes it to a
// deterministically named file. It never mutates scheduling state; the
// caller only observes the returned error.
type Fetcher struct {
	client     WaveformClient
	sel        domain.Selectors
	outputDir  string
	optionalID string
	log        *logger.Logger
}

func New(client WaveformClient, sel domain.Selectors, outputDir, optionalID string, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:     client,
		sel:        sel,
		outputDir:  outputDir,
		optionalID: optionalID,
		log:        log,
	}
}

// Filename derives the output filename for a window start. Two calls with
// the same start always agree, so a retried window overwrites its earlier
// partial result instead of duplicating it.
func (f *Fetcher) Filename(start time.Time) string {
	id := f.optionalID
	if id == "" {
		id = f.sel.Station
	}
	return fmt.Sprintf("%s_%s_%s%s", filenamePrefix, id, start.UTC().Format(stampLayout), filenameExt)
}

// FetchStore performs the request for one window and durably writes the
// result. Network errors, empty responses and write errors all surface the
// same way; a failed attempt leaves no partial file behind.
func (f *Fetcher) FetchStore(ctx context.Context, win domain.Window) (string, int64, error) {
	f.log.Info("Requesting %s for %s", f.sel, win)

	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		f.log.Error("Cannot create output directory %s: %v", f.outputDir, err)
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	block, err := f.client.Fetch(ctx, f.sel, win.Start, win.End)
	if err != nil {
		f.log.Error("Error downloading data: %v", err)
		return "", 0, err
	}

	path := filepath.Join(f.outputDir, f.Filename(win.Start))
	if err := writeBlock(path, block); err != nil {
		f.log.Error("Error writing %s: %v", path, err)
		return "", 0, err
	}

	f.log.Info("Data saved to %s (%d bytes)", path, len(block))
	return path, int64(len(block)), nil
}

// writeBlock stages the block next to its final path and renames it into
// place, so readers of the output directory never see a half-written file.
func writeBlock(path string, block []byte) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, block, 0644); err != nil {
		return fmt.Errorf("failed to write waveform file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize waveform file: %w", err)
	}
	return nil
}
