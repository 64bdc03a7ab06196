package location

import (
	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"

	"github.com/randytsao24/wastewizard/internal/models"
)

// TransverseMercator is a forward transverse mercator projection with a
// latitude of origin at the equator.
type TransverseMercator struct {
	crs wgs84.ProjectedReferenceSystem
}

// NewTransverseMercator builds a projection on the given spheroid. The central
// meridian is in degrees and the false easting in metres.
func NewTransverseMercator(spheroid wgs84.Spheroid, centralMeridian, scale, falseEasting float64) TransverseMercator {
	return TransverseMercator{
		crs: wgs84.Datum{Spheroid: spheroid}.TransverseMercator(centralMeridian, 0, scale, falseEasting, 0),
	}
}

// CityGrid is "+proj=tmerc +x_0=304800 +lon_0=-79.5 +k_0=0.9999 +ellps=clrk66",
// the grid the collection area boundaries are drawn in.
var CityGrid = NewTransverseMercator(wgs84.Clarke1866{}, -79.5, 0.9999, 304800)

// Forward projects a geographic coordinate to planar x (easting) and y (northing).
// Coordinates are taken as already on the grid's datum; no datum shift is applied.
func (p TransverseMercator) Forward(c models.Coordinate) orb.Point {
	x, y := p.crs.Projection.FromLonLat(c.Lng, c.Lat, p.crs.Datum)
	return orb.Point{x, y}
}
