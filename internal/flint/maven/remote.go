package maven

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// RemoteRepository is a single remote maven source.
type RemoteRepository struct {
	BaseURL string
}

// URLFor returns the download URL of an artifact within this repository.
func (r RemoteRepository) URLFor(artifact Artifact) string {
	return strings.TrimRight(r.BaseURL, "/") + "/" + artifact.FilePath()
}

// Downloader resolves and downloads artifacts from an ordered source list.
//
// The client is nil in offline mode; every resolution then fails immediately
// with ErrOfflineResolution instead of touching the network.
type Downloader struct {
	client  *http.Client
	sources []RemoteRepository
}

// NewDownloader creates a Downloader over the given repository URLs.
func NewDownloader(client *http.Client, urls ...string) *Downloader {
	sources := make([]RemoteRepository, 0, len(urls))
	for _, url := range urls {
		sources = append(sources, RemoteRepository{BaseURL: url})
	}
	return &Downloader{client: client, sources: sources}
}

// AddSource appends a remote repository to the probe order.
func (d *Downloader) AddSource(source RemoteRepository) {
	d.sources = append(d.sources, source)
}

// Offline reports whether the downloader has no HTTP client.
func (d *Downloader) Offline() bool {
	return d.client == nil
}

// ResolveURL probes sources in order and returns the first URL serving the artifact.
//
// It is a pure lookup: nothing is cached here, the caller persists the result.
func (d *Downloader) ResolveURL(ctx context.Context, artifact Artifact) (string, error) {
	if d.client == nil {
		return "", fmt.Errorf("%w: %s", helpers.ErrOfflineResolution, artifact)
	}
	if len(d.sources) == 0 {
		return "", fmt.Errorf("%w: %s", helpers.ErrNoRemoteSources, artifact)
	}
	for _, source := range d.sources {
		url := source.URLFor(artifact)
		ok, err := d.probe(ctx, url)
		if err != nil {
			return "", fmt.Errorf("failed to probe %s: %w", url, err)
		}
		if ok {
			return url, nil
		}
	}
	return "", fmt.Errorf("%w: %s", helpers.ErrArtifactNotFound, artifact)
}

// probe checks whether a URL serves content, preferring HEAD over GET.
func (d *Downloader) probe(ctx context.Context, url string) (bool, error) {
	ok, retryWithGet, err := d.probeOnce(ctx, url, http.MethodHead)
	if err != nil || !retryWithGet {
		return ok, err
	}
	ok, _, err = d.probeOnce(ctx, url, http.MethodGet)
	return ok, err
}

func (d *Downloader) probeOnce(ctx context.Context, url, method string) (ok, retryWithGet bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return false, false, err
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return false, false, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent:
		return true, false, nil
	case resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented:
		return false, method == http.MethodHead, nil
	default:
		return false, false, nil
	}
}

// Fetch downloads a URL and returns the response body stream.
func (d *Downloader) Fetch(ctx context.Context, url string) (*http.Response, error) {
	if d.client == nil {
		return nil, fmt.Errorf("%w: %s", helpers.ErrOfflineResolution, url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s (%s)", helpers.ErrDownloadFailed, url, resp.Status)
	}
	return resp, nil
}

// Download resolves an artifact and installs it into the repository.
//
// The resolved URL is returned so the caller can persist it in the
// resolved-URL cache; on failure no state has been mutated.
func (d *Downloader) Download(ctx context.Context, artifact Artifact, repo *Repository) (string, error) {
	url, err := d.ResolveURL(ctx, artifact)
	if err != nil {
		return "", err
	}
	if err := d.DownloadTo(ctx, url, artifact, repo); err != nil {
		return "", err
	}
	return url, nil
}

// DownloadTo streams a known URL into the repository.
func (d *Downloader) DownloadTo(ctx context.Context, url string, artifact Artifact, repo *Repository) error {
	resp, err := d.Fetch(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if _, err := repo.Install(artifact, resp.Body); err != nil {
		return err
	}
	return nil
}
