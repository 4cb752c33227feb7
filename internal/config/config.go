package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/paths"
)

// FileName is the config file name without extension.
const FileName = "quail"

// CurrentVersion is the only config schema version understood.
const CurrentVersion = 1

// Source types.
const (
	SourceLocal   = "local"
	SourceArchive = "archive"
	SourceGitHub  = "github"
)

// Config describes one packaged application and where its payload comes from.
type Config struct {
	Version    int          `mapstructure:"version" yaml:"version"`
	Name       string       `mapstructure:"name" yaml:"name"`
	Binary     string       `mapstructure:"binary" yaml:"binary"`
	Icon       string       `mapstructure:"icon" yaml:"icon"`
	Publisher  string       `mapstructure:"publisher" yaml:"publisher"`
	Console    bool         `mapstructure:"console" yaml:"console"`
	Integrity  bool         `mapstructure:"integrity" yaml:"integrity"`
	InstallDir string       `mapstructure:"install_dir" yaml:"install_dir,omitempty"`
	Registrar  string       `mapstructure:"registrar" yaml:"registrar"`
	Source     SourceConfig `mapstructure:"source" yaml:"source"`
}

// SourceConfig selects and parameterises the content source.
type SourceConfig struct {
	// Type is one of local, archive, or github.
	Type string `mapstructure:"type" yaml:"type"`

	// Path and Version configure a local directory source.
	Path    string `mapstructure:"path" yaml:"path,omitempty"`
	Version string `mapstructure:"version" yaml:"version,omitempty"`

	// URL and VersionURL configure a remote archive source.
	URL        string `mapstructure:"url" yaml:"url,omitempty"`
	VersionURL string `mapstructure:"version_url" yaml:"version_url,omitempty"`

	// Repo, Asset, and Token configure a GitHub release source.
	Repo  string `mapstructure:"repo" yaml:"repo,omitempty"`
	Asset string `mapstructure:"asset" yaml:"asset,omitempty"`
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

// defaults lists every key so environment overrides are seen by Unmarshal.
var defaults = map[string]any{
	"version":            CurrentVersion,
	"name":               "",
	"binary":             "",
	"icon":               "",
	"publisher":          "Quail",
	"console":            false,
	"integrity":          false,
	"install_dir":        "",
	"registrar":          "auto",
	"source.type":        SourceLocal,
	"source.path":        "",
	"source.version":     "",
	"source.url":         "",
	"source.version_url": "",
	"source.repo":        "",
	"source.asset":       "",
	"source.token":       "",
}

// Init resets Viper and configures search paths, environment binding, and
// defaults. Call it once at startup before Load.
//
// Search order: the current directory, the directory holding the running
// executable, then $QUAIL_CONFIG_DIR or $XDG_CONFIG_HOME/quail.
func Init() {
	viper.Reset()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if exe, err := os.Executable(); err == nil {
		viper.AddConfigPath(filepath.Dir(exe))
	}
	if dir := os.Getenv("QUAIL_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	viper.SetEnvPrefix("QUAIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file; a missing file is an error.
// If path is empty, it searches the default locations and falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Defaults only.
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return &cfg, errors.Wrap(&ValidationError{Errs: errs}, "validating config")
	}

	return &cfg, nil
}

// Used returns the config file Viper loaded, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}
