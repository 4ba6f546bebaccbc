// Package loader builds a Places population from Countries.csv-style and
// city-TSV-style input files, measuring label extents with a real font
// face and projecting geographic coordinates into the engine's pixel
// space. Depends on pkg/placeable, pkg/project, and pkg/fontmetrics.
package loader

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajturner/acetate/pkg/fontmetrics"
	"github.com/ajturner/acetate/pkg/placeable"
	"github.com/ajturner/acetate/pkg/project"
)

// ErrInvalidInput signals a row whose latitude, longitude, population, or
// zoom could not be parsed. The enclosing loader decides whether to
// surface or skip the row; callers that want strict loading can treat any
// ErrInvalidInput as fatal, others can log and continue.
var ErrInvalidInput = errors.New("loader: invalid input row")

const defaultBuffer = 2.0

// CityFonts selects which face to measure a city's label with, based on
// its population, mirroring the tiered legend a static atlas would use.
type CityFonts struct {
	Pop25M, Pop250K, Pop50K, Other fontmetrics.TextMeasurer
}

func (f CityFonts) pick(population int) fontmetrics.TextMeasurer {
	switch {
	case population >= 2_500_000:
		return f.Pop25M
	case population >= 250_000:
		return f.Pop250K
	case population >= 50_000:
		return f.Pop50K
	default:
		return f.Other
	}
}

// LoadCountries reads a Countries.csv file (header columns: name,
// abbreviation, zoom, latitude, longitude, land area km, population) and
// returns one Country per row whose zoom does not exceed maxZoom.
func LoadCountries(path string, maxZoom int, proj project.Projector, font fontmetrics.TextMeasurer) ([]*placeable.Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open countries file: %w", err)
	}
	defer f.Close()

	rows, err := readCSVRows(f)
	if err != nil {
		return nil, fmt.Errorf("loader: read countries file: %w", err)
	}

	var countries []*placeable.Country
	for i, row := range rows {
		zoom, err := strconv.Atoi(row["zoom"])
		if err != nil {
			return nil, fmt.Errorf("%w: countries row %d: bad zoom %q: %v", ErrInvalidInput, i, row["zoom"], err)
		}
		if zoom > maxZoom {
			continue
		}

		lat, lon, err := parseLatLon(row["latitude"], row["longitude"])
		if err != nil {
			return nil, fmt.Errorf("%w: countries row %d: %v", ErrInvalidInput, i, err)
		}
		population, err := strconv.Atoi(row["population"])
		if err != nil {
			return nil, fmt.Errorf("%w: countries row %d: bad population %q: %v", ErrInvalidInput, i, row["population"], err)
		}
		landArea, err := strconv.ParseFloat(row["land area km"], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: countries row %d: bad land area %q: %v", ErrInvalidInput, i, row["land area km"], err)
		}

		name, abbr := row["name"], row["abbreviation"]
		minW, err := font.Measure(abbr)
		if err != nil {
			return nil, fmt.Errorf("loader: measure abbreviation %q: %w", abbr, err)
		}
		maxW, err := font.Measure(name)
		if err != nil {
			return nil, fmt.Errorf("loader: measure name %q: %w", name, err)
		}
		lineHeight := font.LineHeight()

		x, y := proj.Project(lat, lon)
		hdr := placeable.Header{
			ID:            fmt.Sprintf("country-%d", i),
			Name:          name,
			Abbreviation:  abbr,
			Population:    &population,
			Rank:          zoom - 2, // biggest countries appear at zoom 3
			ZoomThreshold: zoom,
			Anchor:        placeable.Point{X: x, Y: y},
			Location:      placeable.Location{Lat: lat, Lon: lon},
			Buffer:        defaultBuffer,
		}

		countries = append(countries, placeable.NewCountry(hdr, landArea, int(minW), int(lineHeight), int(maxW), int(lineHeight)))
	}

	return countries, nil
}

// LoadCities reads one or more city TSV files (transparently gzip-decoded
// when the path ends in .gz), header columns: name, population, zoom,
// geonameid, latitude, longitude. Returns HighZoomCity instances when
// maxZoom is 9 or higher, City instances otherwise, matching the variant
// the rest of the engine expects at that zoom tier.
func LoadCities(paths []string, maxZoom int, proj project.Projector, fonts CityFonts) ([]placeable.Placeable, error) {
	var cities []placeable.Placeable
	count := 0

	for _, path := range paths {
		rows, err := readCityFile(path)
		if err != nil {
			return nil, fmt.Errorf("loader: read %s: %w", path, err)
		}

		for _, row := range rows {
			zoom, err := strconv.Atoi(row["zoom"])
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: bad zoom %q: %v", ErrInvalidInput, path, count, row["zoom"], err)
			}
			if zoom > maxZoom {
				continue
			}

			lat, lon, err := parseLatLon(row["latitude"], row["longitude"])
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: %v", ErrInvalidInput, path, count, err)
			}

			var populationPtr *int
			population, popErr := strconv.Atoi(row["population"])
			if popErr == nil {
				populationPtr = &population
			}

			font := fonts.pick(population)
			name := row["name"]
			width, err := font.Measure(name)
			if err != nil {
				return nil, fmt.Errorf("loader: measure name %q: %w", name, err)
			}
			height := font.LineHeight()

			x, y := proj.Project(lat, lon)
			hdr := placeable.Header{
				ID:            fmt.Sprintf("city-%d", count),
				Name:          name,
				GeonameID:     row["geonameid"],
				Population:    populationPtr,
				Rank:          zoom - 3, // biggest cities appear at zoom 4
				ZoomThreshold: zoom,
				Anchor:        placeable.Point{X: x, Y: y},
				Location:      placeable.Location{Lat: lat, Lon: lon},
				Buffer:        defaultBuffer,
			}

			var pl placeable.Placeable
			if maxZoom >= 9 {
				pl = placeable.NewHighZoomCity(hdr, int(width), int(height))
			} else {
				pl = placeable.NewCity(hdr, int(width), int(height))
			}
			cities = append(cities, pl)
			count++
		}
	}

	return cities, nil
}

// LoadCapitals reads a newline-delimited list of geonameids (one per line,
// surrounding whitespace trimmed) into a membership set, for tagging
// capital cities in emitted output.
func LoadCapitals(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read capitals file: %w", err)
	}

	set := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		id := strings.TrimSpace(line)
		if id != "" {
			set[id] = true
		}
	}
	return set, nil
}

func parseLatLon(latS, lonS string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(latS, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude %q: %w", latS, err)
	}
	lon, err = strconv.ParseFloat(lonS, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude %q: %w", lonS, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinate out of range: lat=%v lon=%v", lat, lon)
	}
	return lat, lon, nil
}

// readCSVRows parses comma-separated input with a header row into maps
// keyed by lower-cased header name.
func readCSVRows(r io.Reader) ([]map[string]string, error) {
	return readDelimitedRows(r, ',')
}

// readCityFile opens a (possibly gzip-compressed) tab-separated city file.
func readCityFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return readDelimitedRows(r, '\t')
}

func readDelimitedRows(r io.Reader, comma rune) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.ToLower(strings.TrimSpace(col))] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
