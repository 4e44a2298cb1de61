package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/handiism/soundcloud-digger/internal/browser"
	"github.com/handiism/soundcloud-digger/internal/dig"
	"github.com/handiism/soundcloud-digger/internal/export"
	"github.com/handiism/soundcloud-digger/internal/http"
)

// FileName is the base name of the settings file searched for when no path
// is given. Both .yaml and .json are accepted.
const FileName = ".soundcloud-digger"

// EnvPrefix prefixes the environment variables overriding settings, e.g.
// DIGGER_MAX_TRACKS.
const EnvPrefix = "DIGGER"

// Render modes.
const (
	RenderHTTP    = "http"
	RenderBrowser = "browser"
)

// Settings holds all configuration options.
type Settings struct {
	// Fetch settings
	Delay         float64 `mapstructure:"delay" json:"delay" yaml:"delay" validate:"gte=0"`
	Timeout       float64 `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"gt=0"`
	MaxTracks     int     `mapstructure:"max_tracks" json:"max_tracks" yaml:"max_tracks" validate:"gte=-1"`
	MaxRetries    int     `mapstructure:"max_retries" json:"max_retries" yaml:"max_retries" validate:"gte=0,lte=20"`
	RetryBackoff  float64 `mapstructure:"retry_backoff" json:"retry_backoff" yaml:"retry_backoff" validate:"gte=0"`
	UserAgent     string  `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent" validate:"required"`
	Render        string  `mapstructure:"render" json:"render" yaml:"render" validate:"oneof=http browser"`
	RespectRobots bool    `mapstructure:"respect_robots" json:"respect_robots" yaml:"respect_robots"`
	CacheSize     int     `mapstructure:"cache_size" json:"cache_size" yaml:"cache_size" validate:"gt=0"`

	// Export settings
	ExportFormat string `mapstructure:"export_format" json:"export_format" yaml:"export_format" validate:"export_format"` // json, yaml, m3u, pls, wpl, none
	OutputPath   string `mapstructure:"output_path" json:"output_path" yaml:"output_path"`

	// Open settings
	Browser    string  `mapstructure:"browser" json:"browser" yaml:"browser" validate:"browser"`
	OpenPacing float64 `mapstructure:"open_pacing" json:"open_pacing" yaml:"open_pacing" validate:"gte=0"`

	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error fatal"`

	file string
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Delay:         0.5,
		Timeout:       http.DefaultTimeout.Seconds(),
		MaxTracks:     -1,
		MaxRetries:    http.DefaultMaxRetries,
		RetryBackoff:  http.DefaultBackoff.Seconds(),
		UserAgent:     http.DefaultUserAgent,
		Render:        RenderHTTP,
		RespectRobots: false,
		CacheSize:     dig.DefaultCacheSize,

		ExportFormat: export.FormatJSON.String(),
		OutputPath:   "",

		Browser:    browser.DefaultBrowser,
		OpenPacing: browser.DefaultPacing.Seconds(),

		LogLevel: "info",
	}
}

// Load reads settings from path, or from FileName in the working directory
// or ~/.config/soundcloud-digger when path is empty. Environment variables
// prefixed with EnvPrefix override file values. A missing default file is
// not an error; a missing explicit path is.
func Load(path string) (*Settings, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/soundcloud-digger")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultSettings())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	settings.file = v.ConfigFileUsed()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// setDefaults registers every field of s with v, so that AutomaticEnv can
// see keys that are absent from the file.
func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("delay", s.Delay)
	v.SetDefault("timeout", s.Timeout)
	v.SetDefault("max_tracks", s.MaxTracks)
	v.SetDefault("max_retries", s.MaxRetries)
	v.SetDefault("retry_backoff", s.RetryBackoff)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("render", s.Render)
	v.SetDefault("respect_robots", s.RespectRobots)
	v.SetDefault("cache_size", s.CacheSize)
	v.SetDefault("export_format", s.ExportFormat)
	v.SetDefault("output_path", s.OutputPath)
	v.SetDefault("browser", s.Browser)
	v.SetDefault("open_pacing", s.OpenPacing)
	v.SetDefault("log_level", s.LogLevel)
}

// File returns the settings file Load read, or "" when defaults and the
// environment were used alone.
func (s *Settings) File() string {
	return s.file
}

// Validate checks every field against its constraints.
func (s *Settings) Validate() error {
	if err := newValidator().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("browser", func(fl validator.FieldLevel) bool {
		return browser.ValidBrowser(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	_ = validate.RegisterValidation("export_format", func(fl validator.FieldLevel) bool {
		_, err := export.ParseFormat(fl.Field().String())
		return err == nil
	})
	return validate
}

// Save writes settings to path, as YAML when the extension is .yaml or .yml
// and as JSON otherwise.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Format returns the parsed export format.
func (s *Settings) Format() export.Format {
	f, err := export.ParseFormat(s.ExportFormat)
	if err != nil {
		return export.FormatNone
	}
	return f
}

// Level returns the parsed log level, falling back to info.
func (s *Settings) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// DigOptions converts the fetch settings to dig.Options.
func (s *Settings) DigOptions() dig.Options {
	return dig.Options{
		Delay:     seconds(s.Delay),
		Timeout:   seconds(s.Timeout),
		MaxTracks: s.MaxTracks,
		CacheSize: s.CacheSize,
	}
}

// ClientOptions converts the fetch settings to http.Client options.
func (s *Settings) ClientOptions(logger *log.Logger) []http.Option {
	return []http.Option{
		http.WithUserAgent(s.UserAgent),
		http.WithRetries(s.MaxRetries, seconds(s.RetryBackoff)),
		http.WithRobots(s.RespectRobots),
		http.WithLogger(logger),
	}
}

// PacingDuration returns the pause between opened links.
func (s *Settings) PacingDuration() time.Duration {
	return seconds(s.OpenPacing)
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
