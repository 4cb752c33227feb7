//go:build !windows

package registrar

import "github.com/thoreinstein/quail/internal/errors"

func newWindows(App, options) (Registrar, error) {
	return nil, errors.Wrap(ErrUnsupported, "windows registrar")
}
