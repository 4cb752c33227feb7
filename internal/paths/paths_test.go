package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/quail/internal/errors"
)

func TestXDGDirs(t *testing.T) {
	dataHome := t.TempDir()
	cacheHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	Reload()
	t.Cleanup(Reload)

	assert.Equal(t, filepath.Join(dataHome, "applications"), ApplicationsDir())
	assert.Equal(t, filepath.Join(dataHome, "quail", "receipts"), ReceiptsDir())
	assert.Equal(t, filepath.Join(cacheHome, "quail", "downloads"), DownloadsDir())
	assert.Equal(t, filepath.Join(configHome, "quail"), ConfigDir())
}

func TestInstallPath(t *testing.T) {
	home, err := ResolveHome()
	require.NoError(t, err)

	got, err := InstallPath("Allum1", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quail", "Allum1"), got)

	override := t.TempDir()
	got, err = InstallPath("Allum1", override)
	require.NoError(t, err)
	assert.Equal(t, override, got)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Allum1", false},
		{"with spaces", "My App", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidName))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir, 0))
	require.NoError(t, EnsureDir(dir, 0))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWithin(t *testing.T) {
	root := filepath.Join("/opt", "app")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "quail"), true},
		{filepath.Join(root, "bin", "quail"), true},
		{root, true},
		{filepath.Join("/opt", "app2", "quail"), false},
		{filepath.Join("/opt", "quail"), false},
		{filepath.Join(root, "..", "quail"), false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(tt.path, root))
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := filepath.Join("/srv", "demo")
	assert.True(t, Overlaps(base, base))
	assert.True(t, Overlaps(base, filepath.Join(base, "payload")))
	assert.True(t, Overlaps(filepath.Join(base, "payload"), base))
	assert.False(t, Overlaps(base, filepath.Join("/srv", "demo2")))
}

func TestExpandHome(t *testing.T) {
	home, err := ResolveHome()
	require.NoError(t, err)

	got, err := ExpandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = ExpandHome("~/apps/demo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "apps", "demo"), got)

	got, err = ExpandHome("/opt/~demo")
	require.NoError(t, err)
	assert.Equal(t, "/opt/~demo", got)
}

func TestCheckInstallPath(t *testing.T) {
	home, err := ResolveHome()
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"root", string(filepath.Separator), true},
		{"home", home, true},
		{"parent of home", filepath.Dir(home), true},
		{"inside home", filepath.Join(home, ".quail", "demo"), false},
		{"temp dir", t.TempDir(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInstallPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsafeInstallPath)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInstallPath_RejectsUnsafeOverride(t *testing.T) {
	_, err := InstallPath("Allum1", "~")
	require.ErrorIs(t, err, ErrUnsafeInstallPath)

	_, err = InstallPath("Allum1", string(filepath.Separator))
	require.ErrorIs(t, err, ErrUnsafeInstallPath)
}
