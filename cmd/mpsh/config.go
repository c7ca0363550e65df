package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"gopkg.in/yaml.v3"

	"github.com/Lailouezzz/microparser/lr/engine"
)

// Config is the configuration of mpsh, usually loaded from a YAML file.
//
// Config serves as the application configuration for schuko as well: trace
// levels are looked up as "tracelevel.<key>" by the tracers, and the engine
// reads "panic-on-internal-error" through package gconf.
type Config struct {
	Trace                string `yaml:"trace"`
	TraceDestination     string `yaml:"trace-destination"`
	Prompt               string `yaml:"prompt"`
	MaxDepth             int    `yaml:"max-depth"`
	PanicOnInternalError bool   `yaml:"panic-on-internal-error"`
}

var _ schuko.Configuration = (*Config)(nil)

// LoadConfig reads a configuration file. An empty path yields the default
// configuration.
func LoadConfig(path string) (*Config, error) {
	c := &Config{}
	c.InitDefaults()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("cannot parse configuration %s: %w", path, err)
	}
	c.InitDefaults()
	return c, nil
}

// Validate checks the values of a configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Trace) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("unknown trace level %q, expected one of Debug, Info, Error", c.Trace)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative, is %d", c.MaxDepth)
	}
	return nil
}

// EngineOptions returns the options for LR parsers created by mpsh.
func (c *Config) EngineOptions() []engine.Option {
	if c.MaxDepth > 0 {
		return []engine.Option{engine.MaxDepth(c.MaxDepth)}
	}
	return nil
}

// --- schuko.Configuration --------------------------------------------------

// InitDefaults fills in defaults for unset values.
func (c *Config) InitDefaults() {
	if c.Trace == "" {
		c.Trace = "Error"
	}
	if c.Prompt == "" {
		c.Prompt = "mpsh> "
	}
}

func (c *Config) IsSet(key string) bool {
	switch key {
	case "tracing.adapter":
		return true
	case "tracing.destination":
		return c.TraceDestination != ""
	case "prompt":
		return c.Prompt != ""
	case "max-depth":
		return c.MaxDepth > 0
	case "panic-on-internal-error":
		return c.PanicOnInternalError
	}
	return isTraceLevelKey(key) && c.Trace != ""
}

func (c *Config) GetString(key string) string {
	switch key {
	case "tracing.adapter":
		return "go"
	case "tracing.destination":
		return c.TraceDestination
	case "prompt":
		return c.Prompt
	}
	if isTraceLevelKey(key) {
		return c.Trace
	}
	return ""
}

func (c *Config) GetInt(key string) int {
	if key == "max-depth" {
		return c.MaxDepth
	}
	return 0
}

func (c *Config) GetBool(key string) bool {
	if key == "panic-on-internal-error" {
		return c.PanicOnInternalError
	}
	return false
}

func (c *Config) IsInteractive() bool {
	return false
}

// Trace levels are read by trace2go as "tracelevel.<tracer>" and by gconf
// for its global tracers as "tracing<area>".
func isTraceLevelKey(key string) bool {
	return strings.HasPrefix(key, "tracelevel") ||
		(strings.HasPrefix(key, "tracing") && !strings.HasPrefix(key, "tracing."))
}

// --- Tracing ---------------------------------------------------------------

// initTracing sets up go-log tracers for all tracing keys, with levels and
// output destination taken from c.
func initTracing(c *Config) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(c, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(c)
	level := tracing.TraceLevelFromString(c.Trace)
	for _, key := range []string{"microparser.lr", "microparser.scanner", "microparser.shell"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("trace level is %s", level)
	return nil
}
