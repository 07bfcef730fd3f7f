package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/paper-updater/internal/domain/artifact"
	"github.com/oshokin/paper-updater/internal/version"
)

// Config holds the settings for a single update run.
type Config struct {
	// APIURL is the root of the build-distribution API.
	APIURL string `yaml:"api_url"`
	// Project is the project slug whose builds are installed.
	Project string `yaml:"project"`
	// Timeout bounds each metadata request.
	Timeout time.Duration `yaml:"timeout"`
	// DownloadTimeout bounds the artifact download; zero means no limit.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// OutputFile is the name the artifact is installed under.
	OutputFile string `yaml:"output_file"`
	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
}

const (
	// DefaultConfigFilename is looked up in the working directory when no path is given.
	DefaultConfigFilename = "paper-updater.yaml"

	// DefaultTimeout bounds each metadata request.
	DefaultTimeout = 10 * time.Second

	// DefaultOutputFile is the name the server artifact is installed under.
	DefaultOutputFile = "server.jar"

	// userAgentProduct prefixes the build version in the User-Agent header.
	userAgentProduct = "paper-updater/"
)

var (
	// errNegativeTimeout is returned when a timeout below zero is configured.
	errNegativeTimeout = errors.New("timeout must not be negative")
	// errOutputFileIsPath is returned when output_file contains a directory part.
	errOutputFileIsPath = errors.New("output file must be a plain file name")
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		APIURL:     artifact.DefaultBaseURL,
		Project:    artifact.DefaultProject,
		Timeout:    DefaultTimeout,
		OutputFile: DefaultOutputFile,
		UserAgent:  DefaultUserAgent(),
	}
}

// Load reads configuration from path on top of the defaults.
// An empty path means DefaultConfigFilename, which may be absent.
// An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings and fills zero values with defaults.
func Validate(settings *Config) error {
	if settings.APIURL == "" {
		settings.APIURL = artifact.DefaultBaseURL
	}

	if _, err := url.ParseRequestURI(settings.APIURL); err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	if settings.Project == "" {
		settings.Project = artifact.DefaultProject
	}

	if settings.Timeout < 0 || settings.DownloadTimeout < 0 {
		return errNegativeTimeout
	}

	if settings.Timeout == 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.OutputFile == "" {
		settings.OutputFile = DefaultOutputFile
	}

	if strings.ContainsAny(settings.OutputFile, `/\`) || filepath.Base(settings.OutputFile) != settings.OutputFile {
		return fmt.Errorf("%s: %w", settings.OutputFile, errOutputFileIsPath)
	}

	if settings.UserAgent == "" {
		settings.UserAgent = DefaultUserAgent()
	}

	return nil
}

// DefaultUserAgent identifies the tool and its build to the API.
func DefaultUserAgent() string {
	return userAgentProduct + version.Short()
}

// Template returns the URL template described by the settings.
func (c *Config) Template() artifact.Template {
	return artifact.NewTemplate(c.APIURL, c.Project)
}
