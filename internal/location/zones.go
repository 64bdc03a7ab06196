package location

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/wastewizard/internal/cache"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

const boundaryDataset = "boundaries"

// Zone is one collection area
type Zone struct {
	Name    string
	Polygon orb.MultiPolygon
}

// BoundarySet is the ordered list of collection areas from the boundary dataset
type BoundarySet struct {
	zones []Zone
}

// NewBoundarySet wraps zones in dataset order
func NewBoundarySet(zones []Zone) *BoundarySet {
	return &BoundarySet{zones: zones}
}

// Len returns the number of zones
func (b *BoundarySet) Len() int {
	return len(b.zones)
}

// Locate returns the first zone, in dataset order, whose polygon contains p.
// Points on a shared edge belong to whichever zone comes first.
func (b *BoundarySet) Locate(p orb.Point) (string, bool) {
	for _, z := range b.zones {
		if !z.Polygon.Bound().Contains(p) {
			continue
		}
		if planar.MultiPolygonContains(z.Polygon, p) {
			return z.Name, true
		}
	}
	return "", false
}

// ParseBoundaries reads polygons from a shapefile's .shp and .dbf contents.
// nameField is the dbf column holding the zone name; spaces are removed from it.
func ParseBoundaries(shpData, dbfData []byte, nameField int) (*BoundarySet, error) {
	r := shp.SequentialReaderFromExt(
		io.NopCloser(bytes.NewReader(shpData)),
		io.NopCloser(bytes.NewReader(dbfData)),
	)
	defer r.Close()

	if nameField >= len(r.Fields()) {
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("reading shapefile header: %w", err)
		}
		return nil, fmt.Errorf("name field %d out of range, dbf has %d fields", nameField, len(r.Fields()))
	}

	var zones []Zone
	for r.Next() {
		_, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		zones = append(zones, Zone{
			Name:    strings.ReplaceAll(strings.Trim(r.Attribute(nameField), "\x00 "), " ", ""),
			Polygon: toMultiPolygon(poly),
		})
	}
	if err := r.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading shapefile: %w", err)
	}
	if len(zones) == 0 {
		return nil, errors.New("shapefile has no polygons")
	}
	return NewBoundarySet(zones), nil
}

// toMultiPolygon splits shapefile parts into polygons. Shapefiles store outer
// rings clockwise and holes counter-clockwise; a hole attaches to the most
// recent outer ring.
func toMultiPolygon(p *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for i := 0; i < len(p.Parts); i++ {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start < 0 || end > len(p.Points) || start >= end {
			continue
		}

		ring := make(orb.Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}

		if ring.Orientation() == orb.CW || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		last := len(mp) - 1
		mp[last] = append(mp[last], ring)
	}
	return mp
}

// DatasetFetcher downloads a named remote dataset
type DatasetFetcher interface {
	Get(ctx context.Context, dataset, url string) ([]byte, error)
}

// ZoneResolver maps a coordinate to its collection area
type ZoneResolver struct {
	fetcher    DatasetFetcher
	shpURL     string
	dbfURL     string
	nameField  int
	projection TransverseMercator
	cache      *cache.Cache[*BoundarySet]
	logger     *zap.Logger
	metrics    *observability.Collector
}

// ZoneResolverConfig locates the boundary dataset
type ZoneResolverConfig struct {
	SHPURL    string
	DBFURL    string
	NameField int
}

// NewZoneResolver creates a resolver that projects into CityGrid
func NewZoneResolver(cfg ZoneResolverConfig, fetcher DatasetFetcher, boundaries *cache.Cache[*BoundarySet], logger *zap.Logger, metrics *observability.Collector) *ZoneResolver {
	return &ZoneResolver{
		fetcher:    fetcher,
		shpURL:     cfg.SHPURL,
		dbfURL:     cfg.DBFURL,
		nameField:  cfg.NameField,
		projection: CityGrid,
		cache:      boundaries,
		logger:     logger,
		metrics:    metrics,
	}
}

// Boundaries returns the boundary set, fetching both shapefile parts
// concurrently on a cache miss.
func (r *ZoneResolver) Boundaries(ctx context.Context) (*BoundarySet, error) {
	set, hit, err := r.cache.GetOrLoad(ctx, r.shpURL, r.loadBoundaries)
	if err != nil {
		return nil, outcome.Fail("load boundaries", outcome.RemoteUnavailable, err)
	}
	if hit {
		r.metrics.CacheHit(boundaryDataset)
	}
	return set, nil
}

func (r *ZoneResolver) loadBoundaries(ctx context.Context) (*BoundarySet, error) {
	var shpData, dbfData []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shpData, err = r.fetcher.Get(gctx, boundaryDataset, r.shpURL)
		return err
	})
	g.Go(func() error {
		var err error
		dbfData, err = r.fetcher.Get(gctx, boundaryDataset, r.dbfURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set, err := ParseBoundaries(shpData, dbfData, r.nameField)
	if err != nil {
		return nil, err
	}
	r.logger.Info("loaded collection boundaries", zap.Int("zones", set.Len()))
	return set, nil
}

// Resolve returns the space-free name of the zone containing c.
func (r *ZoneResolver) Resolve(ctx context.Context, c models.Coordinate) (string, error) {
	set, err := r.Boundaries(ctx)
	if err != nil {
		return "", err
	}

	point := r.projection.Forward(c)
	name, ok := set.Locate(point)
	if !ok {
		r.logger.Info("no collection area contains point",
			zap.Float64("lat", c.Lat),
			zap.Float64("lng", c.Lng),
			zap.Float64("x", point.X()),
			zap.Float64("y", point.Y()),
		)
		return "", outcome.Fail("resolve zone", outcome.NoMatch, nil)
	}

	r.logger.Debug("matched collection area", zap.String("zone", name))
	return name, nil
}
