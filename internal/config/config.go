package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-modal/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "vango-modal.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "vango-modal.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host. Empty binds all interfaces.
	DefaultHost = ""

	// DefaultTitle is the default page title.
	DefaultTitle = "vango-modal"
)

// Config represents the complete vango-modal configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Session contains live session settings.
	Session SessionConfig `json:"session,omitempty" yaml:"session,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Modal contains collector presentation settings.
	Modal ModalConfig `json:"modal,omitempty" yaml:"modal,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Title is the document title of the served page.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "30s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics *bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing starts an OpenTelemetry span for every live event.
	Tracing bool `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// SessionConfig contains live session settings.
type SessionConfig struct {
	// ReadTimeout is how long a session waits for a client frame (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout bounds each frame sent to the client.
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// MaxMessageSize is the largest client frame accepted, in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty" yaml:"maxMessageSize,omitempty"`

	// MaxEventQueue is the number of client frames buffered per session.
	MaxEventQueue int `json:"maxEventQueue,omitempty" yaml:"maxEventQueue,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ModalConfig contains collector presentation settings.
type ModalConfig struct {
	// LabelledBy is the id referenced by aria-labelledby on the dialog.
	LabelledBy string `json:"labelledBy,omitempty" yaml:"labelledBy,omitempty"`

	// ZIndex is the stacking order of the overlay.
	ZIndex int `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`

	// Backdrop is the overlay background color.
	Backdrop string `json:"backdrop,omitempty" yaml:"backdrop,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory. It looks for
// vango-modal.json first, then vango-modal.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + dir).
		WithSuggestion("Create " + ConfigFileName + " or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Title == "" {
		c.Server.Title = DefaultTitle
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "30s"
	}
	if c.Server.Metrics == nil {
		enabled := true
		c.Server.Metrics = &enabled
	}

	if c.Session.ReadTimeout == "" {
		c.Session.ReadTimeout = "60s"
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = "10s"
	}
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = 64 * 1024
	}
	if c.Session.MaxEventQueue == 0 {
		c.Session.MaxEventQueue = 256
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("server.port must be between 0 and 65535")
	}
	for name, value := range map[string]string{
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"session.readTimeout":    c.Session.ReadTimeout,
		"session.writeTimeout":   c.Session.WriteTimeout,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New("E122").
				WithDetail(name + " is not a valid duration: " + strconv.Quote(value)).
				WithSuggestion(`Use Go duration syntax such as "30s" or "2m"`)
		}
	}
	if c.Session.MaxMessageSize < 0 || c.Session.MaxEventQueue < 0 {
		return errors.New("E122").
			WithDetail("session limits must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E122").
			WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if c.Modal.ZIndex < 0 {
		return errors.New("E122").
			WithDetail("modal.zIndex must not be negative")
	}
	return nil
}

// Address returns the listen address for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// MetricsEnabled reports whether Prometheus metrics are exposed.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// ShutdownTimeout returns the parsed shutdown timeout. Validate reports
// unparsable values; here they yield zero.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout)
}

// ReadTimeout returns the parsed session read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Session.ReadTimeout)
}

// WriteTimeout returns the parsed session write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Session.WriteTimeout)
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error, got " + strconv.Quote(level))
	}
	return l, nil
}

// NewLogger builds a slog.Logger writing to w with the configured level
// and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the one holding a config
// file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
