// Package disposal answers "how do I get rid of X" from the city's waste
// wizard catalogue.
package disposal

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/cache"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

const catalogueDataset = "catalogue"

// ParseCatalogue decodes the catalogue's JSON array
func ParseCatalogue(data []byte) ([]models.DisposalRecord, error) {
	var records []models.DisposalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	return records, nil
}

// DatasetFetcher downloads a named remote dataset
type DatasetFetcher interface {
	Get(ctx context.Context, dataset, url string) ([]byte, error)
}

// Catalogue loads disposal records from the city's open data endpoint
type Catalogue struct {
	fetcher DatasetFetcher
	url     string
	cache   *cache.Cache[[]models.DisposalRecord]
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewCatalogue creates a catalogue backed by url
func NewCatalogue(url string, fetcher DatasetFetcher, records *cache.Cache[[]models.DisposalRecord], logger *zap.Logger, metrics *observability.Collector) *Catalogue {
	return &Catalogue{
		fetcher: fetcher,
		url:     url,
		cache:   records,
		logger:  logger,
		metrics: metrics,
	}
}

// Records returns every catalogue entry in published order. Failures are
// RemoteUnavailable.
func (c *Catalogue) Records(ctx context.Context) ([]models.DisposalRecord, error) {
	records, hit, err := c.cache.GetOrLoad(ctx, c.url, func(ctx context.Context) ([]models.DisposalRecord, error) {
		data, err := c.fetcher.Get(ctx, catalogueDataset, c.url)
		if err != nil {
			return nil, err
		}
		records, err := ParseCatalogue(data)
		if err != nil {
			return nil, err
		}
		c.logger.Info("loaded disposal catalogue", zap.Int("records", len(records)))
		return records, nil
	})
	if err != nil {
		return nil, outcome.Fail("load catalogue", outcome.RemoteUnavailable, err)
	}
	if hit {
		c.metrics.CacheHit(catalogueDataset)
	}
	return records, nil
}
