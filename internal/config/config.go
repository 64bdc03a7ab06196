// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default dataset locations. The boundary shapefile is the city's daytime
// curbside collection areas in MTM zone 10 (NAD27) coordinates.
const (
	DefaultGeocodeURL     = "https://maps.googleapis.com/maps/api/geocode/json"
	DefaultBoundarySHPURL = "http://www.laumoda.com/alexa/skills/torontowastewizard/cityprj_res_wastecollect_schedule_mtm3_b.shp"
	DefaultBoundaryDBFURL = "http://www.laumoda.com/alexa/skills/torontowastewizard/cityprj_res_wastecollect_schedule_mtm3_b.dbf"
	DefaultScheduleURL    = "https://www.toronto.ca/ext/open_data/catalog/data_set_files/Pickup_Schedule_2018.csv"
	DefaultCatalogueURL   = "https://secure.toronto.ca/cc_sr_v1/data/swm_waste_wizard_APR?limit=1000"
)

// Config holds all application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// ApplicationID is the voice skill id every inbound request must carry.
	ApplicationID string
	// AcceptAnyApplication turns the application id check off. Only for
	// local testing against a simulator.
	AcceptAnyApplication bool

	GeocodeURL          string
	GeocodeAPIKey       string
	GeocodeRegionSuffix string
	ServiceCity         string

	BoundarySHPURL    string
	BoundaryDBFURL    string
	BoundaryNameField int
	ScheduleURL       string
	CatalogueURL      string

	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables, with sensible defaults.
func Load() *Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SKILL_APPLICATION_ID", "")
	v.SetDefault("SKILL_ACCEPT_ANY_APPLICATION", false)
	v.SetDefault("GOOGLE_GEOCODING_API_KEY", "")
	v.SetDefault("GEOCODE_URL", DefaultGeocodeURL)
	v.SetDefault("GEOCODE_REGION_SUFFIX", "Toronto, ON")
	v.SetDefault("SERVICE_CITY", "Toronto")
	v.SetDefault("BOUNDARY_SHP_URL", DefaultBoundarySHPURL)
	v.SetDefault("BOUNDARY_DBF_URL", DefaultBoundaryDBFURL)
	v.SetDefault("BOUNDARY_NAME_FIELD", 2)
	v.SetDefault("SCHEDULE_URL", DefaultScheduleURL)
	v.SetDefault("CATALOGUE_URL", DefaultCatalogueURL)
	v.SetDefault("CACHE_TTL_SECONDS", 3600)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Port:                 v.GetString("PORT"),
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		ApplicationID:        v.GetString("SKILL_APPLICATION_ID"),
		AcceptAnyApplication: v.GetBool("SKILL_ACCEPT_ANY_APPLICATION"),
		GeocodeURL:           v.GetString("GEOCODE_URL"),
		GeocodeAPIKey:        v.GetString("GOOGLE_GEOCODING_API_KEY"),
		GeocodeRegionSuffix:  v.GetString("GEOCODE_REGION_SUFFIX"),
		ServiceCity:          v.GetString("SERVICE_CITY"),
		BoundarySHPURL:       v.GetString("BOUNDARY_SHP_URL"),
		BoundaryDBFURL:       v.GetString("BOUNDARY_DBF_URL"),
		BoundaryNameField:    v.GetInt("BOUNDARY_NAME_FIELD"),
		ScheduleURL:          v.GetString("SCHEDULE_URL"),
		CatalogueURL:         v.GetString("CATALOGUE_URL"),
		CacheTTL:             time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		HTTPTimeout:          time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.BoundaryNameField < 0 {
		errs = append(errs, errors.New("BOUNDARY_NAME_FIELD must not be negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must not be negative"))
	}
	if c.ApplicationID == "" && !c.AcceptAnyApplication {
		errs = append(errs, errors.New("SKILL_APPLICATION_ID is required unless SKILL_ACCEPT_ANY_APPLICATION is set"))
	}
	if !c.IsDevelopment() && c.GeocodeAPIKey == "" {
		errs = append(errs, errors.New("GOOGLE_GEOCODING_API_KEY is required outside development"))
	}
	return errors.Join(errs...)
}
