package normalizer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config represents normalizer defaults
type Config struct {
	Marker        bool              `yaml:"marker,omitempty" json:"marker,omitempty" toml:"marker"`
	MarkProperty  string            `yaml:"markerMarkProperty,omitempty" json:"markerMarkProperty,omitempty" toml:"markerMarkProperty"`
	ValueProperty string            `yaml:"markerValueProperty,omitempty" json:"markerValueProperty,omitempty" toml:"markerValueProperty"`
	UnknownMark   UnknownMarkPolicy `yaml:"markerUnknownMark,omitempty" json:"markerUnknownMark,omitempty" toml:"markerUnknownMark"`
}

// Init fills unspecified settings with defaults
func (c *Config) Init() {
	if c.MarkProperty == "" {
		c.MarkProperty = DefaultMarkProperty
	}
	if c.ValueProperty == "" {
		c.ValueProperty = DefaultValueProperty
	}
	if c.UnknownMark == "" {
		c.UnknownMark = UnknownMarkThrow
	}
}

// Validate checks if config is valid
func (c *Config) Validate() error {
	if !c.UnknownMark.IsValid() {
		return fmt.Errorf("invalid markerUnknownMark: %q", c.UnknownMark)
	}
	if c.MarkProperty == c.ValueProperty {
		return fmt.Errorf("markerMarkProperty and markerValueProperty must differ: %q", c.MarkProperty)
	}
	return nil
}

// Context returns config context
func (c *Config) Context() Context {
	ret := *c
	ret.Init()
	return Context{
		Marker:        ret.Marker,
		MarkProperty:  ret.MarkProperty,
		ValueProperty: ret.ValueProperty,
		UnknownMark:   ret.UnknownMark,
	}
}

// LoadConfig loads config from the supplied URL, the URL extension selects yaml, json or toml decoding
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	cfg, err := DecodeConfig(data, path.Ext(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return cfg, nil
}

// DecodeConfig decodes, initialises and validates config, format is one of yaml, json or toml
func DecodeConfig(data []byte, format string) (*Config, error) {
	cfg := &Config{}
	var err error
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		err = json.Unmarshal(data, cfg)
	case "toml":
		err = toml.Unmarshal(data, cfg)
	case "yaml", "yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %v", format)
	}
	if err != nil {
		return nil, err
	}
	cfg.Init()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
