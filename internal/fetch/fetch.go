// Package fetch downloads remote datasets over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/observability"
)

// maxBodyBytes caps a single dataset download. The boundary shapefile is the
// largest at a few megabytes.
const maxBodyBytes = 64 << 20

// Fetcher performs a single GET per call with no retry.
type Fetcher struct {
	client   *http.Client
	logger   *zap.Logger
	metrics  *observability.Collector
	maxBytes int64
}

// New creates a fetcher whose requests time out after timeout.
func New(timeout time.Duration, logger *zap.Logger, metrics *observability.Collector) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		metrics:  metrics,
		maxBytes: maxBodyBytes,
	}
}

// Get downloads url and returns the body. Any transport error or non-2xx
// status is returned as an error; dataset names label logs and metrics.
func (f *Fetcher) Get(ctx context.Context, dataset, url string) (body []byte, err error) {
	start := time.Now()
	defer func() {
		f.metrics.ObserveUpstream(dataset, start, err)
		if err != nil {
			f.logger.Warn("dataset fetch failed",
				zap.String("dataset", dataset),
				zap.String("url", url),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		f.logger.Debug("dataset fetched",
			zap.String("dataset", dataset),
			zap.Int("bytes", len(body)),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", dataset, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", dataset, resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", dataset, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%s response exceeds %d bytes", dataset, f.maxBytes)
	}
	return body, nil
}
