// Package integrity verifies an installed payload against the manifest of
// SHA-256 digests shipped with it.
//
// The manifest is produced at packaging time (quail manifest <dir>) and
// stored as quail_manifest.json at the payload root. Verification is
// read-only.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// ManifestName is the manifest file name at the payload root.
const ManifestName = "quail_manifest.json"

// Manifest maps forward-slash relative paths to lowercase hex SHA-256 digests.
type Manifest map[string]string

// HashFile returns the hex SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Build hashes every regular file under root. The manifest file itself is
// left out.
func Build(root string) (Manifest, error) {
	m := Manifest{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ManifestName {
			return nil
		}
		sum, err := HashFile(path)
		if err != nil {
			return errors.Wrapf(err, "hashing %s", rel)
		}
		m[rel] = sum
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "building manifest for %s", root)
	}
	return m, nil
}

// Load reads a manifest file. A missing file wraps errors.ErrNotFound.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "manifest %s", path)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// Save writes m to path atomically.
func Save(path string, m Manifest) error {
	return errors.Wrap(fileutil.AtomicWriteJSON(path, m), "writing manifest")
}

// Verify hashes every file m lists under installPath and returns the
// sorted paths that are missing, unreadable, mismatched, or not valid
// relative paths. An empty result means the install is clean. The error is
// only for a nil manifest.
func Verify(installPath string, m Manifest) ([]string, error) {
	if m == nil {
		return nil, errors.New("nil manifest")
	}

	offenders := []string{}
	for rel, want := range m {
		if !fs.ValidPath(rel) || rel == "." {
			offenders = append(offenders, rel)
			continue
		}
		got, err := HashFile(filepath.Join(installPath, filepath.FromSlash(rel)))
		if err != nil || got != want {
			offenders = append(offenders, rel)
		}
	}
	slices.Sort(offenders)
	return offenders, nil
}

// Check loads the manifest shipped under installPath and verifies against
// it. Any offender, or a missing manifest, is an *errors.IntegrityError.
func Check(installPath string) error {
	m, err := Load(filepath.Join(installPath, ManifestName))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewIntegrityError([]string{ManifestName})
		}
		return errors.CombineErrors(errors.NewIntegrityError([]string{ManifestName}), err)
	}
	offenders, err := Verify(installPath, m)
	if err != nil {
		return err
	}
	if len(offenders) > 0 {
		return errors.NewIntegrityError(offenders)
	}
	return nil
}
