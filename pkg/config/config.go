// Package config loads the placement engine's run configuration from a
// YAML file, in the same shape the teacher stack uses elsewhere in this
// module: gopkg.in/yaml.v3 for the file, joho/godotenv for loading local
// .env files into the process environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything a run of the placement engine needs.
type Config struct {
	Zoom       int          `yaml:"zoom"`
	WallBudget Duration     `yaml:"wall_budget"`
	ProbeSteps int          `yaml:"probe_steps"`
	Seed       int64        `yaml:"seed"`
	Input      InputConfig  `yaml:"input"`
	Output     OutputConfig `yaml:"output"`
	Fonts      FontsConfig  `yaml:"fonts"`
	Log        LogConfig    `yaml:"log"`
}

// InputConfig names the source data files.
type InputConfig struct {
	CountriesCSV string   `yaml:"countries_csv"`
	CityFiles    []string `yaml:"city_files"`
	CapitalsFile string   `yaml:"capitals_file"`
}

// OutputConfig names the two GeoJSON files written on completion.
type OutputConfig struct {
	PointsPath string `yaml:"points_path"`
	LabelsPath string `yaml:"labels_path"`
}

// FontSpec is a font file path and point size.
type FontSpec struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// FontsConfig mirrors the per-population-tier font selection the loader
// uses when measuring label extents.
type FontsConfig struct {
	Country  FontSpec `yaml:"country"`
	Pop25M   FontSpec `yaml:"pop_25m"`
	Pop250K  FontSpec `yaml:"pop_250k"`
	Pop50K   FontSpec `yaml:"pop_50k"`
	PopOther FontSpec `yaml:"pop_other"`
}

// LogConfig holds the single log stream's settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the baseline configuration used when a run doesn't
// override a field.
func DefaultConfig() *Config {
	return &Config{
		Zoom:       5,
		WallBudget: Duration(time.Minute),
		ProbeSteps: 50,
		Seed:       1,
		Input: InputConfig{
			CountriesCSV: "Countries.csv",
			CapitalsFile: "Capitals.txt",
		},
		Output: OutputConfig{
			PointsPath: "out-points.geojson",
			LabelsPath: "out-labels.geojson",
		},
		Fonts: FontsConfig{
			Country:  FontSpec{Path: "fonts/DejaVuSans.ttf", Size: 12},
			Pop25M:   FontSpec{Path: "fonts/DejaVuSans.ttf", Size: 14},
			Pop250K:  FontSpec{Path: "fonts/DejaVuSans.ttf", Size: 12},
			Pop50K:   FontSpec{Path: "fonts/DejaVuSans.ttf", Size: 12},
			PopOther: FontSpec{Path: "fonts/DejaVuSans.ttf", Size: 12},
		},
		Log: LogConfig{
			Path:  "placelabel.log",
			Level: "INFO",
		},
	}
}

// Load reads the configuration from path, layering it over DefaultConfig,
// then loads local .env files into the process environment; no Config
// field is read from the environment. A missing file is not an error: the
// defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// Ignored: it's valid to rely solely on the process environment.
	_ = godotenv.Load(".env.local", ".env")

	return cfg, nil
}
