package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoreinstein/quail/internal/paths"
)

func validBase() *Config {
	return &Config{
		Version:   CurrentVersion,
		Name:      "Allum1",
		Binary:    "allum1",
		Registrar: "auto",
		Source:    SourceConfig{Type: SourceLocal, Path: "/srv/allum1", Version: "1.0"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{"valid", func(*Config) {}, nil},
		{"nested binary", func(c *Config) { c.Binary = "bin/allum1" }, nil},
		{"absolute binary", func(c *Config) { c.Binary = "/usr/bin/allum1" }, []error{ErrInvalidPath}},
		{"escaping icon", func(c *Config) { c.Icon = "../icon.png" }, []error{ErrInvalidPath}},
		{"name with slash", func(c *Config) { c.Name = "a/b" }, []error{paths.ErrInvalidName}},
		{"archive ok", func(c *Config) {
			c.Source = SourceConfig{Type: SourceArchive, URL: "https://x/app.zip", VersionURL: "https://x/version"}
		}, nil},
		{"archive missing version url", func(c *Config) {
			c.Source = SourceConfig{Type: SourceArchive, URL: "https://x/app.zip"}
		}, []error{ErrMissingField}},
		{"unknown source", func(c *Config) { c.Source.Type = "ftp" }, []error{ErrInvalidValue}},
		{"install dir with nul", func(c *Config) { c.InstallDir = "/opt/\x00" }, []error{ErrInvalidPath}},
		{"install dir elsewhere", func(c *Config) { c.InstallDir = "/opt/allum1" }, nil},
		{"install dir root", func(c *Config) { c.InstallDir = "/" }, []error{paths.ErrUnsafeInstallPath}},
		{"install dir home", func(c *Config) { c.InstallDir = "~" }, []error{paths.ErrUnsafeInstallPath}},
		{"install dir holds source", func(c *Config) { c.InstallDir = "/srv" }, []error{paths.ErrUnsafeInstallPath}},
		{"install dir is source", func(c *Config) { c.InstallDir = "/srv/allum1" }, []error{paths.ErrUnsafeInstallPath}},
		{"install dir inside source", func(c *Config) { c.InstallDir = "/srv/allum1/out" }, []error{paths.ErrUnsafeInstallPath}},
		{"source inside default install path", func(c *Config) {
			home, _ := paths.ResolveHome()
			c.Source.Path = filepath.Join(home, ".quail", "Allum1", "payload")
		}, []error{paths.ErrUnsafeInstallPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(cfg)
			errs := Validate(cfg)
			assert.Len(t, errs, len(tt.wantErr))
			for i, want := range tt.wantErr {
				assert.ErrorIs(t, errs[i], want)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestValidate_CollectsAll(t *testing.T) {
	errs := Validate(&Config{})
	// version, name, binary, registrar, source.type
	assert.Len(t, errs, 5)
}
