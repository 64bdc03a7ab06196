// Package collection selects the next curbside pickup for a collection area
// and phrases it for speech.
package collection

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/cache"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

const scheduleDataset = "schedule"

// weekStartLayout accepts both "2/22/18" and "02/22/18"
const weekStartLayout = "1/2/06"

// scheduleColumns is the zone column, the date column, and one flag per stream
const scheduleColumns = 2 + len(models.ScheduleStreams)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSchedule reads the pickup calendar. Rows that are too short or whose
// week start is not a date (such as a header) are skipped. A stream is
// collected unless its cell is exactly "0".
func ParseSchedule(data []byte) ([]models.ScheduleRow, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []models.ScheduleRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading schedule: %w", err)
		}
		if len(record) < scheduleColumns {
			continue
		}

		weekStart, err := time.Parse(weekStartLayout, strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}

		row := models.ScheduleRow{Zone: record[0], WeekStart: weekStart}
		for i := range row.Flags {
			row.Flags[i] = record[2+i] != "0"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SelectRow returns the first row, in file order, whose zone column contains
// zone and whose week starts on or after query. Rows are not assumed to be
// sorted by date.
func SelectRow(rows []models.ScheduleRow, zone string, query time.Time) (models.ScheduleRow, bool) {
	for _, row := range rows {
		if !strings.Contains(row.Zone, zone) {
			continue
		}
		if !row.WeekStart.Before(query) {
			return row, true
		}
	}
	return models.ScheduleRow{}, false
}

// DatasetFetcher downloads a named remote dataset
type DatasetFetcher interface {
	Get(ctx context.Context, dataset, url string) ([]byte, error)
}

// Calendar looks up pickups in the city's collection schedule
type Calendar struct {
	fetcher DatasetFetcher
	url     string
	cache   *cache.Cache[[]models.ScheduleRow]
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewCalendar creates a calendar backed by the schedule at url
func NewCalendar(url string, fetcher DatasetFetcher, rows *cache.Cache[[]models.ScheduleRow], logger *zap.Logger, metrics *observability.Collector) *Calendar {
	return &Calendar{
		fetcher: fetcher,
		url:     url,
		cache:   rows,
		logger:  logger,
		metrics: metrics,
	}
}

// Rows returns the parsed schedule, from cache when possible
func (c *Calendar) Rows(ctx context.Context) ([]models.ScheduleRow, error) {
	rows, hit, err := c.cache.GetOrLoad(ctx, c.url, func(ctx context.Context) ([]models.ScheduleRow, error) {
		data, err := c.fetcher.Get(ctx, scheduleDataset, c.url)
		if err != nil {
			return nil, err
		}
		rows, err := ParseSchedule(data)
		if err != nil {
			return nil, err
		}
		c.logger.Info("loaded collection schedule", zap.Int("rows", len(rows)))
		return rows, nil
	})
	if err != nil {
		return nil, outcome.Fail("load schedule", outcome.RemoteUnavailable, err)
	}
	if hit {
		c.metrics.CacheHit(scheduleDataset)
	}
	return rows, nil
}

// Next returns the first collection for zone on or after query.
func (c *Calendar) Next(ctx context.Context, zone string, query time.Time) (models.Collection, error) {
	rows, err := c.Rows(ctx)
	if err != nil {
		return models.Collection{}, err
	}

	row, ok := SelectRow(rows, zone, query)
	if !ok {
		c.logger.Info("no upcoming collection",
			zap.String("zone", zone),
			zap.Time("query_date", query),
		)
		return models.Collection{}, outcome.Fail("next collection", outcome.NoMatch, nil)
	}

	return models.Collection{
		Zone:    zone,
		Date:    row.WeekStart,
		Streams: row.Streams(),
	}, nil
}
