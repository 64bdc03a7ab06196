package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/randytsao24/wastewizard/internal/collection"
	"github.com/randytsao24/wastewizard/internal/disposal"
	"github.com/randytsao24/wastewizard/internal/location"
	"github.com/randytsao24/wastewizard/internal/models"
)

// AddressSource reads the street address configured on a device
type AddressSource interface {
	Lookup(ctx context.Context, d location.Device) (string, error)
}

// Geocoder converts an address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, error)
}

// ZoneResolver names the collection area containing a coordinate
type ZoneResolver interface {
	Resolve(ctx context.Context, c models.Coordinate) (string, error)
}

// Calendar finds the next pickup for a collection area
type Calendar interface {
	Next(ctx context.Context, zone string, query time.Time) (models.Collection, error)
}

// DisposalFinder finds disposal instructions for a normalized material name
type DisposalFinder interface {
	Find(ctx context.Context, term string) (disposal.Match, error)
}

// State is a step of the schedule lookup
type State int

const (
	Start State = iota
	AddressResolved
	GeoCoded
	ZoneResolved
	CollectionFound
	Done
)

var stateNames = [...]string{
	Start:           "start",
	AddressResolved: "address_resolved",
	GeoCoded:        "geocoded",
	ZoneResolved:    "zone_resolved",
	CollectionFound: "collection_found",
	Done:            "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Result is a finished schedule lookup. Reached is the last state entered
// before Done; when Err is set the stage after Reached failed and nothing
// later ran.
type Result struct {
	Reached    State
	Err        error
	Address    string
	Coordinate models.Coordinate
	Zone       string
	Collection models.Collection
	Query      time.Time
	Tomorrow   time.Time
}

// OK reports whether a collection was found
func (r Result) OK() bool {
	return r.Err == nil && r.Reached == CollectionFound
}

// Pipeline resolves a device to its next collection: device address,
// coordinates, collection area, calendar row. Each stage runs only after the
// previous one succeeded.
type Pipeline struct {
	address  AddressSource
	geocoder Geocoder
	zones    ZoneResolver
	calendar Calendar
	now      func() time.Time
}

// NewPipeline wires the four stages
func NewPipeline(address AddressSource, geocoder Geocoder, zones ZoneResolver, calendar Calendar) *Pipeline {
	return &Pipeline{
		address:  address,
		geocoder: geocoder,
		zones:    zones,
		calendar: calendar,
		now:      time.Now,
	}
}

// Run starts from the device's configured address
func (p *Pipeline) Run(ctx context.Context, d location.Device) Result {
	res := p.begin(Start)
	addr, err := p.address.Lookup(ctx, d)
	if err != nil {
		res.Err = err
		return res
	}
	res.Address = addr
	res.Reached = AddressResolved
	return p.advance(ctx, res)
}

// RunFromAddress skips the device stage and starts from a known address
func (p *Pipeline) RunFromAddress(ctx context.Context, address string) Result {
	res := p.begin(AddressResolved)
	res.Address = address
	return p.advance(ctx, res)
}

func (p *Pipeline) begin(s State) Result {
	query, tomorrow := collection.Dates(p.now())
	return Result{Reached: s, Query: query, Tomorrow: tomorrow}
}

func (p *Pipeline) advance(ctx context.Context, res Result) Result {
	for res.Reached < CollectionFound {
		if err := p.step(ctx, &res); err != nil {
			res.Err = err
			return res
		}
		res.Reached++
	}
	return res
}

func (p *Pipeline) step(ctx context.Context, res *Result) error {
	var err error
	switch res.Reached {
	case AddressResolved:
		res.Coordinate, err = p.geocoder.Geocode(ctx, res.Address)
	case GeoCoded:
		res.Zone, err = p.zones.Resolve(ctx, res.Coordinate)
	case ZoneResolved:
		res.Collection, err = p.calendar.Next(ctx, res.Zone, res.Query)
	default:
		err = fmt.Errorf("no stage after %s", res.Reached)
	}
	return err
}
