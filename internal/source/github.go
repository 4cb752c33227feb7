package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/thoreinstein/quail/internal/errors"
)

// DefaultGitHubAPI is the GitHub REST API root.
const DefaultGitHubAPI = "https://api.github.com"

// ErrAssetNotFound indicates the latest release lacks the configured asset.
var ErrAssetNotFound = errors.New("release asset not found")

// GitHub serves the named asset of a repository's latest release. The
// release tag is the version.
type GitHub struct {
	repo  string
	asset string
	fetch *fetcher
}

// WithToken authenticates API and download requests.
func WithToken(token string) Option {
	return func(f *fetcher) {
		if token != "" {
			f.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithAPIURL points a GitHub source at a different API root.
func WithAPIURL(api string) Option {
	return func(f *fetcher) { f.api = strings.TrimRight(api, "/") }
}

// NewGitHub returns a source for asset in repo. Repo may be "owner/name"
// or a https://github.com/owner/name URL.
func NewGitHub(repo, asset string, opts ...Option) *GitHub {
	return &GitHub{
		repo:  normalizeRepo(repo),
		asset: asset,
		fetch: newFetcher(opts),
	}
}

// Name returns "owner/name:asset".
func (g *GitHub) Name() string {
	return g.repo + ":" + g.asset
}

type release struct {
	TagName string         `json:"tag_name"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
}

func (g *GitHub) latest(ctx context.Context) (*release, error) {
	endpoint := g.fetch.api + "/repos/" + g.repo + "/releases/latest"
	header := http.Header{"Accept": {"application/vnd.github+json"}}

	data, err := g.fetch.getBytes(ctx, endpoint, header)
	if err != nil {
		return nil, err
	}

	var rel release
	if err := json.Unmarshal(data, &rel); err != nil {
		return nil, errors.Wrap(err, "decoding latest release")
	}
	if strings.TrimSpace(rel.TagName) == "" {
		return nil, errors.New("latest release missing tag_name")
	}
	return &rel, nil
}

// Version returns the latest release tag.
func (g *GitHub) Version(ctx context.Context) (string, error) {
	rel, err := g.latest(ctx)
	if err != nil {
		return "", errors.NewAccessError(g.Name(), err)
	}
	return rel.TagName, nil
}

// Open downloads and extracts the asset of the latest release. The tag and
// the asset come from the same release document.
func (g *GitHub) Open(ctx context.Context) (Snapshot, error) {
	rel, err := g.latest(ctx)
	if err != nil {
		return nil, errors.NewAccessError(g.Name(), err)
	}

	var assetURL string
	for _, a := range rel.Assets {
		if a.Name == g.asset {
			assetURL = a.URL
			break
		}
	}
	if assetURL == "" {
		return nil, errors.NewAccessError(g.Name(), errors.Wrapf(ErrAssetNotFound, "%s in %s", g.asset, rel.TagName))
	}

	header := http.Header{"Accept": {"application/octet-stream"}}
	snap, err := openArchive(ctx, g.fetch, assetURL, g.asset, rel.TagName, header)
	if err != nil {
		return nil, errors.NewAccessError(g.Name(), err)
	}
	return snap, nil
}

// normalizeRepo turns a github.com URL into "owner/name".
func normalizeRepo(repo string) string {
	repo = strings.TrimSuffix(strings.TrimSpace(repo), ".git")
	if u, err := url.Parse(repo); err == nil && u.Host != "" {
		repo = u.Path
	}
	return strings.Trim(repo, "/")
}
