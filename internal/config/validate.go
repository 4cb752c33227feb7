package config

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a config schema this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrMissingField indicates a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidValue indicates a field holds a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")
)

// RegistrarKinds lists the accepted values for the registrar field.
var RegistrarKinds = []string{"auto", "desktop", "windows", "receipt"}

// Validate checks a Config for validity.
// Returns nil if valid, or every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	nameOK := false
	if cfg.Name == "" {
		errs = append(errs, &FieldError{Field: "name", Err: ErrMissingField})
	} else if err := paths.ValidateName(cfg.Name); err != nil {
		errs = append(errs, &FieldError{Field: "name", Value: cfg.Name, Err: err})
	} else {
		nameOK = true
	}

	if cfg.Binary == "" {
		errs = append(errs, &FieldError{Field: "binary", Err: ErrMissingField})
	} else if err := validateRelative(cfg.Binary); err != nil {
		errs = append(errs, &FieldError{Field: "binary", Value: cfg.Binary, Err: err})
	}

	if cfg.Icon != "" {
		if err := validateRelative(cfg.Icon); err != nil {
			errs = append(errs, &FieldError{Field: "icon", Value: cfg.Icon, Err: err})
		}
	}

	installDirOK := true
	if cfg.InstallDir != "" {
		if err := validatePath(cfg.InstallDir); err != nil {
			errs = append(errs, &FieldError{Field: "install_dir", Value: cfg.InstallDir, Err: err})
			installDirOK = false
		}
	}
	if nameOK && installDirOK {
		if err := validateInstallPath(cfg); err != nil {
			errs = append(errs, &FieldError{Field: "install_dir", Value: cfg.InstallDir, Err: err})
		}
	}

	if !slices.Contains(RegistrarKinds, cfg.Registrar) {
		errs = append(errs, &FieldError{Field: "registrar", Value: cfg.Registrar, Err: ErrInvalidValue})
	}

	errs = append(errs, validateSource(&cfg.Source)...)

	return errs
}

func validateSource(src *SourceConfig) []error {
	var errs []error
	need := func(field, value string) {
		if value == "" {
			errs = append(errs, &FieldError{Field: "source." + field, Err: ErrMissingField})
		}
	}

	switch src.Type {
	case SourceLocal:
		need("path", src.Path)
		need("version", src.Version)
	case SourceArchive:
		need("url", src.URL)
		need("version_url", src.VersionURL)
	case SourceGitHub:
		need("repo", src.Repo)
		need("asset", src.Asset)
	default:
		errs = append(errs, &FieldError{Field: "source.type", Value: src.Type, Err: ErrInvalidValue})
	}

	return errs
}

// validateInstallPath resolves the install path and checks it is neither
// a root nor the home directory, and that it does not overlap a local
// source directory.
func validateInstallPath(cfg *Config) error {
	installPath, err := paths.InstallPath(cfg.Name, cfg.InstallDir)
	if err != nil {
		return err
	}
	if cfg.Source.Type != SourceLocal || cfg.Source.Path == "" {
		return nil
	}
	src, err := paths.ExpandHome(cfg.Source.Path)
	if err != nil {
		return err
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", cfg.Source.Path)
	}
	if paths.Overlaps(installPath, src) {
		return errors.Wrapf(paths.ErrUnsafeInstallPath, "%s overlaps source.path %s", installPath, src)
	}
	return nil
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// validateRelative checks that path names a location inside the install path.
func validateRelative(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.Wrap(ErrInvalidPath, "must be relative to the install path")
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.Wrap(ErrInvalidPath, "must not leave the install path")
	}
	return nil
}

// FieldError represents a problem with one config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every FieldError found while loading a config.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
