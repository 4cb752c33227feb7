package source

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver"

	"github.com/thoreinstein/quail/internal/errors"
)

// Archive serves a payload packed as a zip or tarball at a URL. The
// version is the first line of the document at a second URL.
type Archive struct {
	url        string
	versionURL string
	fetch      *fetcher
}

// NewArchive returns a source for the archive at archiveURL. The archive
// format is chosen by the URL's file extension.
func NewArchive(archiveURL, versionURL string, opts ...Option) *Archive {
	return &Archive{
		url:        archiveURL,
		versionURL: versionURL,
		fetch:      newFetcher(opts),
	}
}

// Name returns the archive URL.
func (a *Archive) Name() string {
	return a.url
}

// Version fetches the published version string.
func (a *Archive) Version(ctx context.Context) (string, error) {
	v, err := a.version(ctx)
	if err != nil {
		return "", errors.NewAccessError(a.versionURL, err)
	}
	return v, nil
}

func (a *Archive) version(ctx context.Context) (string, error) {
	data, err := a.fetch.getBytes(ctx, a.versionURL, nil)
	if err != nil {
		return "", err
	}
	return firstLine(data)
}

// Open downloads and extracts the archive. The snapshot version is read
// just before the download.
func (a *Archive) Open(ctx context.Context) (Snapshot, error) {
	version, err := a.version(ctx)
	if err != nil {
		return nil, errors.NewAccessError(a.versionURL, err)
	}
	snap, err := openArchive(ctx, a.fetch, a.url, archiveName(a.url), version, nil)
	if err != nil {
		return nil, errors.NewAccessError(a.url, err)
	}
	return snap, nil
}

// openArchive downloads rawURL into a fresh directory, extracts it, and
// returns a snapshot that removes the directory on Close.
func openArchive(ctx context.Context, f *fetcher, rawURL, name, version string, header http.Header) (Snapshot, error) {
	work, err := f.tempDir()
	if err != nil {
		return nil, err
	}

	snap, err := func() (Snapshot, error) {
		file := filepath.Join(work, name)
		if err := f.download(ctx, rawURL, file, header); err != nil {
			return nil, err
		}

		root := filepath.Join(work, "payload")
		if err := archiver.Unarchive(file, root); err != nil {
			return nil, errors.Wrapf(err, "extracting %s", name)
		}
		if err := os.Remove(file); err != nil {
			return nil, errors.Wrapf(err, "removing %s", name)
		}
		return newDirSnapshot(root, version, work), nil
	}()
	if err != nil {
		_ = os.RemoveAll(work)
		return nil, err
	}
	return snap, nil
}

// archiveName returns the last path element of rawURL, used as the local
// file name so the archive format can be detected from its extension.
func archiveName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
	}
	return "payload.zip"
}

// firstLine returns the first non-empty line of data, trimmed.
func firstLine(data []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", errors.Wrap(err, "reading version")
	}
	return "", errors.New("empty version document")
}
