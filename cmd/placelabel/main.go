// Command placelabel arranges country and city labels on a fixed-zoom web
// Mercator map: it loads places, anneals their positions to minimize
// overlap, resolves the final visible set, and writes two GeoJSON files
// (points and label boxes). Flag handling follows cmd/shp2geojson/main.go.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/ajturner/acetate/pkg/anneal"
	"github.com/ajturner/acetate/pkg/config"
	"github.com/ajturner/acetate/pkg/emit"
	"github.com/ajturner/acetate/pkg/fontmetrics"
	"github.com/ajturner/acetate/pkg/loader"
	"github.com/ajturner/acetate/pkg/logging"
	"github.com/ajturner/acetate/pkg/placeable"
	"github.com/ajturner/acetate/pkg/places"
	"github.com/ajturner/acetate/pkg/project"
	"github.com/ajturner/acetate/pkg/resolve"
)

func main() {
	configPath := flag.String("config", "placelabel.yaml", "Path to config file")
	zoom := flag.Int("zoom", 0, "Map zoom level (0 uses the config value)")
	wallMinutes := flag.Float64("minutes", 0, "Minutes to run the annealer (0 uses the config value)")
	pointsPath := flag.String("points", "", "Output path for point features (overrides config)")
	labelsPath := flag.String("labels", "", "Output path for label features (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *zoom != 0 {
		cfg.Zoom = *zoom
	}
	if *wallMinutes != 0 {
		cfg.WallBudget = config.Duration(time.Duration(*wallMinutes * float64(time.Minute)))
	}
	if *pointsPath != "" {
		cfg.Output.PointsPath = *pointsPath
	}
	if *labelsPath != "" {
		cfg.Output.LabelsPath = *labelsPath
	}

	cleanup, err := logging.Init(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := run(cfg, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, cityFiles []string) error {
	if len(cityFiles) == 0 {
		cityFiles = cfg.Input.CityFiles
	}

	proj := project.NewProjector(cfg.Zoom)

	countryFont, err := fontmetrics.LoadFace(cfg.Fonts.Country.Path, cfg.Fonts.Country.Size)
	if err != nil {
		return fmt.Errorf("placelabel: load country font: %w", err)
	}
	cityFonts := loader.CityFonts{
		Pop25M:  mustFace(cfg.Fonts.Pop25M),
		Pop250K: mustFace(cfg.Fonts.Pop250K),
		Pop50K:  mustFace(cfg.Fonts.Pop50K),
		Other:   mustFace(cfg.Fonts.PopOther),
	}

	countries, err := loader.LoadCountries(cfg.Input.CountriesCSV, cfg.Zoom, proj, countryFont)
	if err != nil {
		return fmt.Errorf("placelabel: load countries: %w", err)
	}
	cities, err := loader.LoadCities(cityFiles, cfg.Zoom, proj, cityFonts)
	if err != nil {
		return fmt.Errorf("placelabel: load cities: %w", err)
	}
	capitals, err := loader.LoadCapitals(cfg.Input.CapitalsFile)
	if err != nil {
		return fmt.Errorf("placelabel: load capitals: %w", err)
	}

	ps := places.New()
	for _, c := range countries {
		neighbors := ps.Add(c)
		slog.Info("loaded country", "name", c.DisplayName(), "neighbors", len(neighbors))
	}
	for _, c := range cities {
		neighbors := ps.Add(c)
		slog.Info("loaded city", "name", c.Header().Name, "neighbors", len(neighbors))
	}

	slog.Info("population loaded", "moveable", len(ps.Moveable()), "total", len(ps.All()))

	a := anneal.New(
		func(p *places.Places) float64 { return p.Energy() },
		func(p *places.Places, rng *rand.Rand) (func(), error) {
			pl, snap, err := p.Move(rng)
			if err != nil {
				return nil, err
			}
			return func() { p.Undo(pl, snap) }, nil
		},
		cfg.Seed,
	)
	a.Checkpoint = func(p *places.Places) any { return p.SnapshotAll() }
	a.Restore = func(p *places.Places, snap any) { p.RestoreAll(snap.(map[string]placeable.Snapshot)) }
	a.Progress = func(step, steps int, energy float64) {
		if step%1000 == 0 {
			logging.TraceDefault("anneal progress", "step", step, "steps", steps, "energy", energy)
		}
	}

	result, err := a.Auto(ps, cfg.WallBudget.Minutes(), cfg.ProbeSteps)
	if err != nil {
		return fmt.Errorf("placelabel: anneal: %w", err)
	}
	slog.Info("annealing complete", "energy", result.Energy, "steps", result.Steps, "t_max", result.TMax, "t_min", result.TMin)

	resolved := resolve.Resolve(ps.All())
	for _, skip := range resolved.Skipped {
		slog.Debug("resolve: dropped", "id", skip.Placeable.Header().ID, "blocked_by", skip.Overlaps.Header().ID)
	}
	slog.Info("resolved visible set", "visible", len(resolved.Visible), "skipped", len(resolved.Skipped))

	capitalSet := emit.CapitalSet(capitals)
	points := emit.Points(resolved.Visible, proj, capitalSet)
	labels := emit.Labels(resolved.Visible, proj, capitalSet)

	if err := writeGeoJSON(cfg.Output.PointsPath, points); err != nil {
		return err
	}
	if err := writeGeoJSON(cfg.Output.LabelsPath, labels); err != nil {
		return err
	}

	fmt.Printf("wrote %d points to %s and %d labels to %s\n",
		len(points.Features), cfg.Output.PointsPath, len(labels.Features), cfg.Output.LabelsPath)
	return nil
}

func mustFace(spec config.FontSpec) fontmetrics.TextMeasurer {
	face, err := fontmetrics.LoadFace(spec.Path, spec.Size)
	if err != nil {
		log.Fatalf("placelabel: load font %s: %v", spec.Path, err)
	}
	return face
}

func writeGeoJSON(path string, fc any) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("placelabel: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("placelabel: write %s: %w", path, err)
	}
	return nil
}
