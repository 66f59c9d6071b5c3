package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/spacing"
)

// DefaultFilename is looked up in the user config directory when no
// explicit path is given.
const DefaultFilename = "framescope.toml"

// DefaultChannel is the Redis channel layout passes are published on.
const DefaultChannel = "framescope:passes"

// Config is the complete framescope configuration.
type Config struct {
	Inspector Inspector `toml:"inspector"`
	Style     Style     `toml:"style"`
	Terminal  Terminal  `toml:"terminal"`
	Server    Server    `toml:"server"`
	Redis     Redis     `toml:"redis"`
}

// Inspector holds controller settings.
type Inspector struct {
	TieBreak string `toml:"tie_break"`
	Enabled  bool   `toml:"enabled"`
}

// Style holds overlay colours and border widths.
type Style struct {
	HighlightColor string  `toml:"highlight_color"`
	BorderColor    string  `toml:"border_color"`
	LabelColor     string  `toml:"label_color"`
	Emphasized     float64 `toml:"emphasized_width"`
	Regular        float64 `toml:"regular_width"`
}

// Terminal maps frame units onto terminal cells.
type Terminal struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// Server configures the HTTP debug server.
type Server struct {
	Addr string `toml:"addr"`
}

// Redis configures the pass transport.
type Redis struct {
	Addr    string `toml:"addr"`
	Channel string `toml:"channel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Inspector: Inspector{TieBreak: "first", Enabled: true},
		Style: Style{
			HighlightColor: "#ff0000",
			BorderColor:    "#0000ff",
			LabelColor:     "#ffffff",
			Emphasized:     2,
			Regular:        1,
		},
		Terminal: Terminal{CellWidth: 8, CellHeight: 16},
		Server:   Server{Addr: "127.0.0.1:7070"},
		Redis:    Redis{Channel: DefaultChannel},
	}
}

// Load reads the TOML file at path over [Default] and validates the result.
//
// An empty path looks for [DefaultFilename] in the user config directory;
// when that file does not exist the defaults are returned. An explicit path
// that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return cfg, nil
			}
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML text over [Default] and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "framescope", DefaultFilename)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if _, err := c.TieBreak(); err != nil {
		return err
	}
	colors := []struct{ name, value string }{
		{"style.highlight_color", c.Style.HighlightColor},
		{"style.border_color", c.Style.BorderColor},
		{"style.label_color", c.Style.LabelColor},
	}
	for _, col := range colors {
		if !hexColor.MatchString(col.value) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a hex colour like #ff0000, got %q", col.name, col.value)
		}
	}
	if err := errors.ValidateScale("style.emphasized_width", c.Style.Emphasized); err != nil {
		return err
	}
	if err := errors.ValidateScale("style.regular_width", c.Style.Regular); err != nil {
		return err
	}
	if err := errors.ValidateScale("terminal.cell_width", c.Terminal.CellWidth); err != nil {
		return err
	}
	if err := errors.ValidateScale("terminal.cell_height", c.Terminal.CellHeight); err != nil {
		return err
	}
	if c.Redis.Channel == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.channel cannot be empty")
	}
	return nil
}

// TieBreak returns the configured neighbour tie-break policy.
func (c Config) TieBreak() (spacing.TieBreak, error) {
	tb, err := spacing.ParseTieBreak(c.Inspector.TieBreak)
	if err != nil {
		return tb, errors.Wrap(errors.ErrCodeInvalidConfig, err, "inspector.tie_break")
	}
	return tb, nil
}
