package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hupe1980/kmeansvis/model"
)

// Config is the run configuration. Values come from defaults, then the TOML
// file named by -config, then explicitly set flags.
type Config struct {
	ClusterCount   int     `toml:"k"`
	Clumpiness     float64 `toml:"clumpiness"`
	Steps          int     `toml:"steps"`
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	Seed           uint64  `toml:"seed"`
	Out            string  `toml:"out"`
	LogLevel       string  `toml:"log_level"`
	StopOnConverge bool    `toml:"stop_on_converge"`
	Epsilon        float64 `toml:"epsilon"`
	MetricsAddr    string  `toml:"metrics_addr"`
}

func defaultConfig() Config {
	d := model.DefaultConfig()
	return Config{
		ClusterCount: d.ClusterCount,
		Clumpiness:   d.Clumpiness,
		Steps:        10,
		Width:        600,
		Height:       600,
		Out:          "frames",
		LogLevel:     "info",
		Epsilon:      1e-9,
	}
}

// loadConfigFile overlays the TOML file at path onto cfg.
// Unknown keys are an error.
func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func parseConfig(args []string, stderr io.Writer) (Config, error) {
	def := defaultConfig()

	fs := flag.NewFlagSet("kmeansvis", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		path = fs.String("config", "", "TOML config file")
		k    = fs.Int("k", def.ClusterCount, "number of clusters")
		cl   = fs.Float64("clumpiness", def.Clumpiness, "clumpiness in [0,100]; 100 is uniform")
		st   = fs.Int("steps", def.Steps, "number of phases to run")
		size = fs.Float64("size", def.Width, "width and height of the square canvas")
		seed = fs.Uint64("seed", def.Seed, "random seed; 0 picks one")
		out  = fs.String("out", def.Out, "output directory for PNG frames")
		lvl  = fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
		stop = fs.Bool("stop-on-converge", def.StopOnConverge, "stop once centroids stop moving")
		eps  = fs.Float64("epsilon", def.Epsilon, "convergence threshold for -stop-on-converge")
		addr = fs.String("metrics-addr", def.MetricsAddr, "serve Prometheus metrics on this address")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *path != "" {
		if err := loadConfigFile(*path, &cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.ClusterCount = *k
		case "clumpiness":
			cfg.Clumpiness = *cl
		case "steps":
			cfg.Steps = *st
		case "size":
			cfg.Width, cfg.Height = *size, *size
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.Out = *out
		case "log-level":
			cfg.LogLevel = *lvl
		case "stop-on-converge":
			cfg.StopOnConverge = *stop
		case "epsilon":
			cfg.Epsilon = *eps
		case "metrics-addr":
			cfg.MetricsAddr = *addr
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that the visualizer does not check itself.
func (c Config) Validate() error {
	if c.Steps < 0 {
		return errors.New("steps must not be negative")
	}
	if c.Out == "" {
		return errors.New("out must not be empty")
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
		return errors.New("epsilon must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Model returns the clustering configuration.
func (c Config) Model() model.Config {
	return model.Config{ClusterCount: c.ClusterCount, Clumpiness: c.Clumpiness}
}

// Bounds returns the canvas bounds.
func (c Config) Bounds() model.Bounds {
	return model.Bounds{Width: c.Width, Height: c.Height}
}
