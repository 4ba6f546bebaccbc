// Package emit converts a resolved, visible placeable set into the two
// output GeoJSON feature collections an atlas consumes: anchor points and
// label boxes. Depends on pkg/placeable, pkg/project, and
// paulmach/orb/geojson.
package emit

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ajturner/acetate/pkg/placeable"
	"github.com/ajturner/acetate/pkg/project"
)

// Capitals reports whether a geonameid is a national capital, used to set
// the "capital" property on city point features.
type Capitals interface {
	Has(geonameID string) bool
}

// CapitalSet is the map-backed Capitals implementation; the map returned by
// loader.LoadCapitals converts to it directly.
type CapitalSet map[string]bool

// Has reports set membership.
func (c CapitalSet) Has(geonameID string) bool { return c[geonameID] }

// Points builds the point-feature collection: one Point geometry per
// visible placeable at its geographic anchor, carrying the same
// properties as its matching label feature.
func Points(visible []placeable.Placeable, proj project.Projector, capitals Capitals) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, pl := range visible {
		h := pl.Header()
		f := geojson.NewFeature(orb.Point{h.Location.Lon, h.Location.Lat})
		f.Properties = properties(h, capitals)
		fc.Append(f)
	}
	return fc
}

// Labels builds the label-feature collection: one Polygon geometry per
// visible placeable, the label's pixel-space bounding box unprojected back
// to geographic coordinates corner by corner.
func Labels(visible []placeable.Placeable, proj project.Projector, capitals Capitals) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, pl := range visible {
		h := pl.Header()
		rect := pl.LabelRect()

		corners := [4][2]float64{
			{rect.MinX, rect.MinY},
			{rect.MaxX, rect.MinY},
			{rect.MaxX, rect.MaxY},
			{rect.MinX, rect.MaxY},
		}

		ring := make(orb.Ring, 0, 5)
		for _, c := range corners {
			lat, lon := proj.Unproject(c[0], c[1])
			ring = append(ring, orb.Point{lon, lat})
		}
		ring = append(ring, ring[0])

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties = properties(h, capitals)
		fc.Append(f)
	}
	return fc
}

func properties(h *placeable.Header, capitals Capitals) geojson.Properties {
	population := 0
	if h.Population != nil {
		population = *h.Population
	}

	place := "city"
	if h.Category == placeable.CategoryCountry {
		place = "country"
	}

	isCapital := h.GeonameID != "" && capitals != nil && capitals.Has(h.GeonameID)
	capital := "no"
	if isCapital {
		capital = "yes"
	}

	return geojson.Properties{
		"name":       h.Name,
		"rank":       h.Rank,
		"population": population,
		"geonameid":  h.GeonameID,
		"capital":    capital,
		"place":      place,
	}
}
