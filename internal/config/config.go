// Package config loads and saves the daemon's YAML settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-neomatrix/internal/layout"
	"github.com/coreman2200/funtimes-neomatrix/internal/led"
)

type Layout struct {
	Serpentine bool `yaml:"serpentine"`
	FlipX      bool `yaml:"flip_x"`
	FlipY      bool `yaml:"flip_y"`
	Transpose  bool `yaml:"transpose"`
}

func (l Layout) Layout() layout.Layout {
	return layout.Layout{Order: layout.Wiring{
		Serpentine: l.Serpentine,
		FlipX:      l.FlipX,
		FlipY:      l.FlipY,
		Transpose:  l.Transpose,
	}}
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
	ResetUs int    `yaml:"reset_us"` // e.g. 300
}

type NRZ struct {
	Port    string `yaml:"port"` // spireg name, "" for the first port
	FreqKHz int    `yaml:"freq_khz"`
}

type Serial struct {
	Port            string `yaml:"port"`
	led.PortOptions `yaml:",inline"`
}

type Sensor struct {
	Kind      string  `yaml:"kind"` // "lis3dh" | "script" | "remote" | "fixed"
	I2CBus    string  `yaml:"i2c_bus"`
	Address   uint16  `yaml:"address"`
	RangeG    int     `yaml:"range_g"`
	Threshold float64 `yaml:"threshold"`
	Script    string  `yaml:"script"`
	Fixed     string  `yaml:"fixed"`
	Forced    string  `yaml:"forced,omitempty"` // set by /control, applies on top of any kind
	WarmupMs  int     `yaml:"warmup_ms"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Driver     string  `yaml:"driver"` // "sim" | "spi" | "pwm" | "nrz" | "serial"
	GPIO       int     `yaml:"gpio"`
	ColorOrder string  `yaml:"color_order"`
	Brightness float64 `yaml:"brightness"`
	SampleMs   int     `yaml:"sample_ms"`
	Cadence    int     `yaml:"cadence"`

	Layout Layout    `yaml:"layout"`
	Power  led.Power `yaml:"power"`
	SPI    SPI       `yaml:"spi,omitempty"`
	NRZ    NRZ       `yaml:"nrz,omitempty"`
	Serial Serial    `yaml:"serial,omitempty"`
	Sensor Sensor    `yaml:"sensor"`
	HTTP   HTTP      `yaml:"http"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Driver:     "sim",
		GPIO:       18,
		ColorOrder: "GRB",
		Brightness: 1,
		Power:      led.Power{ChanMA: 20, BudgetMA: 2000, Knee: 0.9},
		SampleMs:   5,
		Cadence:    5,
		SPI:        SPI{Dev: "/dev/spidev0.0", SpeedHz: 2400000, ResetUs: 300},
		Sensor:     Sensor{Kind: "lis3dh", RangeG: 8, Threshold: 0.8, WarmupMs: 1000},
		HTTP:       HTTP{Addr: ":8080"},
	}
}

// Normalize fills unset values from Default and rejects invalid ones.
func (c *Config) Normalize() error {
	d := Default()
	if c.Driver == "" {
		c.Driver = d.Driver
	}
	switch c.Driver {
	case "sim", "spi", "pwm", "nrz", "serial":
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.ColorOrder == "" {
		c.ColorOrder = d.ColorOrder
	}
	if len(c.ColorOrder) != 3 {
		return fmt.Errorf("color order %q must name three channels", c.ColorOrder)
	}
	if c.Brightness <= 0 || c.Brightness > 1 {
		c.Brightness = d.Brightness
	}
	if c.SampleMs <= 0 {
		c.SampleMs = d.SampleMs
	}
	if c.Cadence <= 0 {
		c.Cadence = d.Cadence
	}
	if c.Sensor.Kind == "" {
		c.Sensor.Kind = d.Sensor.Kind
	}
	if c.Sensor.Threshold <= 0 || c.Sensor.Threshold > 1 {
		c.Sensor.Threshold = d.Sensor.Threshold
	}
	if c.Driver == "serial" {
		opts, err := c.Serial.PortOptions.Normalize()
		if err != nil {
			return fmt.Errorf("serial: %w", err)
		}
		c.Serial.PortOptions = opts
	}
	return nil
}

// Load reads path over Default and normalises the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
