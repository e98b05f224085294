package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultPages is the default pages directory.
	DefaultPages = "app/pages"

	// DefaultLayouts is the default layouts directory.
	DefaultLayouts = "app/layouts"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the default server port (convenience field, also in Dev).
	Port int `json:"port,omitempty"`

	// Paths contains path configuration for project directories.
	Paths PathsConfig `json:"paths,omitempty"`

	// Output is the build output directory served by the dev server.
	Output string `json:"output,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Generator contains route generation configuration.
	Generator GeneratorConfig `json:"generator,omitempty"`

	// Publish contains artifact upload configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Pages is the path to the pages directory routes are generated from.
	Pages string `json:"pages,omitempty"`

	// Layouts is the path to the layouts directory.
	Layouts string `json:"layouts,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// OpenBrowser opens the browser automatically on start.
	OpenBrowser bool `json:"openBrowser,omitempty"`

	// Watch contains extra paths to watch for changes, beyond the pages
	// and layouts directories.
	Watch []string `json:"watch,omitempty"`

	// HotReload enables browser reload on change.
	HotReload bool `json:"hotReload,omitempty"`
}

// GeneratorConfig contains route generation settings.
type GeneratorConfig struct {
	// Layouts enables layout manifest generation.
	Layouts bool `json:"layouts,omitempty"`

	// Extensions lists the file extensions scanned as pages.
	// Defaults to [".go"].
	Extensions []string `json:"extensions,omitempty"`
}

// PublishConfig contains artifact upload settings.
type PublishConfig struct {
	// Bucket is the destination S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket's region.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Port:    DefaultPort,
		Paths: PathsConfig{
			Pages:   DefaultPages,
			Layouts: DefaultLayouts,
		},
		Output: DefaultOutput,
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
		},
		Generator: GeneratorConfig{
			Extensions: []string{".go"},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for wayfind.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E040").
				WithDetail("No wayfind.json found in " + filepath.Dir(path)).
				WithSuggestion("Create wayfind.json in the project root")
		}
		return nil, errors.New("E041").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E041").
			WithDetail("Failed to parse wayfind.json: " + err.Error()).
			WithSuggestion("Check that wayfind.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E041").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E041").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = c.Port
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Paths.Pages == "" {
		c.Paths.Pages = DefaultPages
	}
	if c.Paths.Layouts == "" {
		c.Paths.Layouts = DefaultLayouts
	}
	if len(c.Generator.Extensions) == 0 {
		c.Generator.Extensions = []string{".go"}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E042").
			WithDetail("Port must be between 0 and 65535")
	}
	for _, ext := range c.Generator.Extensions {
		if ext == "" || ext[0] != '.' {
			return errors.New("E042").
				WithDetail("Generator extensions must start with a dot, got " + ext)
		}
	}
	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(c.Dir(), c.Output)
}

// PagesPath returns the absolute path to the pages directory.
func (c *Config) PagesPath() string {
	path := c.Paths.Pages
	if path == "" {
		path = DefaultPages
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// LayoutsPath returns the absolute path to the layouts directory.
func (c *Config) LayoutsPath() string {
	path := c.Paths.Layouts
	if path == "" {
		path = DefaultLayouts
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfind.json, or an error if not found.
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
			return "", errors.New("E040").
				WithDetail("No wayfind.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create wayfind.json in the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	// Reverse
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
