package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/exostack/internal/body"
	"github.com/san-kum/exostack/internal/tensor"
)

const (
	DefaultPeriod      = 1.0
	DefaultRadius      = 0.01
	DefaultInclination = math.Pi / 2
	DefaultSweepStop   = 1.0
	DefaultSamples     = 200
)

type Config struct {
	Central CentralConfig `yaml:"central"`
	Bodies  []BodyConfig  `yaml:"bodies"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

type CentralConfig struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type BodyConfig struct {
	Period       float64 `yaml:"period"`
	Radius       float64 `yaml:"radius"`
	Mass         float64 `yaml:"mass"`
	Inclination  float64 `yaml:"inclination"`
	Eccentricity float64 `yaml:"eccentricity"`
	TimeTransit  float64 `yaml:"time_transit"`
}

type SweepConfig struct {
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"`
	Samples int     `yaml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Central: CentralConfig{Mass: 1.0, Radius: 1.0},
		Bodies: []BodyConfig{
			{Period: DefaultPeriod, Radius: DefaultRadius, Inclination: DefaultInclination},
		},
		Sweep: SweepConfig{Start: 0, Stop: DefaultSweepStop, Samples: DefaultSamples},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Central.Mass <= 0 || c.Central.Radius <= 0 {
		return fmt.Errorf("central mass and radius must be positive")
	}
	for i, b := range c.Bodies {
		if b.Period <= 0 {
			return fmt.Errorf("body %d: period must be positive, got %f", i, b.Period)
		}
		if b.Radius < 0 {
			return fmt.Errorf("body %d: radius must not be negative, got %f", i, b.Radius)
		}
		if b.Eccentricity < 0 || b.Eccentricity >= 1 {
			return fmt.Errorf("body %d: eccentricity must be in [0,1), got %f", i, b.Eccentricity)
		}
	}
	if c.Sweep.Samples < 2 {
		return fmt.Errorf("sweep needs at least 2 samples, got %d", c.Sweep.Samples)
	}
	if c.Sweep.Stop <= c.Sweep.Start {
		return fmt.Errorf("sweep stop must be after start")
	}
	return nil
}

// System builds the configured body system.
func (c *Config) System() (body.System, error) {
	if err := c.Validate(); err != nil {
		return body.System{}, err
	}

	central := body.Central{
		Mass:   tensor.Scalar(c.Central.Mass),
		Radius: tensor.Scalar(c.Central.Radius),
	}

	bodies := make([]body.Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		b := body.NewBody()
		b.Period = tensor.Scalar(bc.Period)
		b.Radius = tensor.Scalar(bc.Radius)
		b.Mass = tensor.Scalar(bc.Mass)
		if bc.Inclination != 0 {
			b.Inclination = tensor.Scalar(bc.Inclination)
		}
		b.Eccentricity = tensor.Scalar(bc.Eccentricity)
		b.TimeTransit = tensor.Scalar(bc.TimeTransit)
		bodies[i] = b
	}
	return body.NewSystem(central, bodies...), nil
}

// Times expands the sweep into an evaluation grid.
func (c *Config) Times() *tensor.Array {
	n := c.Sweep.Samples
	vs := make([]float64, n)
	step := (c.Sweep.Stop - c.Sweep.Start) / float64(n-1)
	for i := range vs {
		vs[i] = c.Sweep.Start + float64(i)*step
	}
	return tensor.Vector(vs...)
}
