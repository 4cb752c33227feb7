package integrity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/quail/internal/errors"
)

func writeTree(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"icon.jpeg":              "jpeg bytes",
		"test.conf":              "key=value\n",
		"conf/test.txt":          "hello\n",
		"subfolder/testfile.txt": "nested\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte("{}"), 0o644))

	m, err := Build(root)
	require.NoError(t, err)

	assert.Len(t, m, 4)
	assert.Contains(t, m, "conf/test.txt")
	assert.Contains(t, m, "subfolder/testfile.txt")
	assert.NotContains(t, m, ManifestName)
}

func TestVerify_DetectsModifiedFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	m, err := Build(root)
	require.NoError(t, err)

	offenders, err := Verify(root, m)
	require.NoError(t, err)
	assert.Empty(t, offenders)

	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "test.txt"), []byte("tampered\n"), 0o644))

	offenders, err = Verify(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"conf/test.txt"}, offenders)
}

func TestVerify_MissingAndInvalid(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	m, err := Build(root)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "icon.jpeg")))
	m["../outside"] = m["test.conf"]

	offenders, err := Verify(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"../outside", "icon.jpeg"}, offenders)
}

func TestVerify_ReadOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	m, err := Build(root)
	require.NoError(t, err)

	before, err := Build(root)
	require.NoError(t, err)
	_, err = Verify(root, m)
	require.NoError(t, err)
	after, err := Build(root)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	_, err = os.Stat(filepath.Join(root, ManifestName))
	assert.True(t, os.IsNotExist(err))
}

func TestVerify_NilManifest(t *testing.T) {
	_, err := Verify(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	m, err := Build(root)
	require.NoError(t, err)

	path := filepath.Join(root, ManifestName)
	require.NoError(t, Save(path, m))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	_, err = Load(filepath.Join(root, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)

	err := Check(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIntegrity))
	var integrityErr *errors.IntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, []string{ManifestName}, integrityErr.Files)

	m, err := Build(root)
	require.NoError(t, err)
	require.NoError(t, Save(filepath.Join(root, ManifestName), m))
	assert.NoError(t, Check(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "test.txt"), []byte("x"), 0o644))
	err = Check(root)
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, []string{"conf/test.txt"}, integrityErr.Files)
}
