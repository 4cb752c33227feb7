package source

import (
	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/errors"
)

// ErrUnknownType indicates a source type with no implementation.
var ErrUnknownType = errors.New("unknown source type")

// New builds the source described by cfg. Options apply to remote sources.
func New(cfg config.SourceConfig, opts ...Option) (Source, error) {
	switch cfg.Type {
	case config.SourceLocal:
		return NewLocal(cfg.Path, cfg.Version), nil
	case config.SourceArchive:
		return NewArchive(cfg.URL, cfg.VersionURL, opts...), nil
	case config.SourceGitHub:
		return NewGitHub(cfg.Repo, cfg.Asset, append(opts, WithToken(cfg.Token))...), nil
	default:
		return nil, errors.Wrapf(ErrUnknownType, "%q", cfg.Type)
	}
}
