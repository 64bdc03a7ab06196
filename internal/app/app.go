// Package app builds the lookup services from configuration. The HTTP server
// and the CLI share it.
package app

import (
	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/cache"
	"github.com/randytsao24/wastewizard/internal/collection"
	"github.com/randytsao24/wastewizard/internal/config"
	"github.com/randytsao24/wastewizard/internal/disposal"
	"github.com/randytsao24/wastewizard/internal/fetch"
	"github.com/randytsao24/wastewizard/internal/location"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/skill"
)

// App holds the wired services
type App struct {
	Skill    *skill.Skill
	Zones    *location.ZoneResolver
	Geocoder *location.Geocoder
	Calendar *collection.Calendar
	Matcher  *disposal.Matcher

	boundaries *cache.Cache[*location.BoundarySet]
	schedule   *cache.Cache[[]models.ScheduleRow]
	catalogue  *cache.Cache[[]models.DisposalRecord]
}

// New wires every stage against the configured endpoints
func New(cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) *App {
	fetcher := fetch.New(cfg.HTTPTimeout, logger.Named("fetch"), metrics)

	a := &App{
		boundaries: cache.New[*location.BoundarySet](cfg.CacheTTL),
		schedule:   cache.New[[]models.ScheduleRow](cfg.CacheTTL),
		catalogue:  cache.New[[]models.DisposalRecord](cfg.CacheTTL),
	}

	a.Geocoder = location.NewGeocoder(location.GeocoderConfig{
		BaseURL:      cfg.GeocodeURL,
		APIKey:       cfg.GeocodeAPIKey,
		RegionSuffix: cfg.GeocodeRegionSuffix,
		Timeout:      cfg.HTTPTimeout,
	}, logger.Named("geocoder"), metrics)

	a.Zones = location.NewZoneResolver(location.ZoneResolverConfig{
		SHPURL:    cfg.BoundarySHPURL,
		DBFURL:    cfg.BoundaryDBFURL,
		NameField: cfg.BoundaryNameField,
	}, fetcher, a.boundaries, logger.Named("zones"), metrics)

	a.Calendar = collection.NewCalendar(cfg.ScheduleURL, fetcher, a.schedule, logger.Named("calendar"), metrics)

	catalogue := disposal.NewCatalogue(cfg.CatalogueURL, fetcher, a.catalogue, logger.Named("catalogue"), metrics)
	a.Matcher = disposal.NewMatcher(catalogue, logger.Named("disposal"))

	devices := location.NewDeviceAddressClient(cfg.ServiceCity, cfg.HTTPTimeout, logger.Named("device"), metrics)
	pipeline := skill.NewPipeline(devices, a.Geocoder, a.Zones, a.Calendar)

	appID := cfg.ApplicationID
	if cfg.AcceptAnyApplication {
		appID = skill.AnyApplication
	}
	a.Skill = skill.New(appID, pipeline, a.Matcher, logger.Named("skill"), metrics)

	logger.Info("services configured",
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Bool("application_check", appID != skill.AnyApplication),
	)
	return a
}

// Close stops the dataset caches
func (a *App) Close() {
	a.boundaries.Close()
	a.schedule.Close()
	a.catalogue.Close()
}
