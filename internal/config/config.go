package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/synthdom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "synthdom.json"

	// DefaultPort is the default HTTP server port.
	DefaultPort = 8080

	// DefaultHost is the default HTTP server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "synthdom"

	// DefaultDoctype is written before documents when none is configured.
	DefaultDoctype = "<!DOCTYPE html>"
)

// Environment variables that override file values.
const (
	EnvXHTML = "SYNTHDOM_XHTML"
	EnvAddr  = "SYNTHDOM_ADDR"
)

// Config represents the complete synthdom.json configuration.
type Config struct {
	// Render contains serialization settings.
	Render RenderConfig `json:"render"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Output contains destinations for rendered documents.
	Output OutputConfig `json:"output,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains serialization settings.
type RenderConfig struct {
	// XHTML closes self-closing elements with "/>".
	XHTML bool `json:"xhtml"`

	// Doctype is written before full documents.
	Doctype string `json:"doctype,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Address overrides Host and Port when set (e.g. ":9000").
	Address string `json:"address,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers render metrics and serves /metrics.
	Enabled bool `json:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// OutputConfig contains destinations for rendered documents.
type OutputConfig struct {
	// Dir is a local directory for rendered files.
	Dir string `json:"dir,omitempty"`

	// S3 is an S3 destination for rendered files.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains an S3 destination.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			Doctype: DefaultDoctype,
		},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for synthdom.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E140").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		se := errors.New("E140").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
		if syn, ok := err.(*json.SyntaxError); ok {
			line, col := lineColumn(data, syn.Offset)
			se.WithLocation(path, line, col)
		}
		return nil, se
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadFromWorkingDir reads synthdom.json from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E140").Wrap(err)
	}
	return Load(wd)
}

// LoadOrDefault loads path when it is non-empty. Otherwise it loads
// synthdom.json from the working directory, falling back to defaults when
// there is none. Environment overrides are applied in every case.
func LoadOrDefault(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = LoadFromWorkingDir()
		if errors.Code(err) == "E141" {
			cfg, err = New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E140").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E140").Wrap(err)
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
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// ApplyEnv applies environment overrides using lookup (os.LookupEnv in
// production). Unparseable boolean values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvXHTML); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Render.XHTML = b
		}
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Address = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E142").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	if c.Server.Address != "" {
		return c.Server.Address
	}
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// lineColumn converts a json.SyntaxError offset, which counts the
// offending byte, into the 1-based line and column of that byte.
func lineColumn(data []byte, offset int64) (int, int) {
	line, col := 1, 1
	for i := int64(0); i < offset-1 && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
