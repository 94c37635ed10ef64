package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxAssetSize bounds a single fetch.
const maxAssetSize = 64 << 20

// Fetcher retrieves the bytes behind a location such as
// "./assets/sounds/music.ogg?v=1700000000000".
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// NewFetcher returns an HTTPFetcher when root is an http(s) URL and a
// DirFetcher over the local directory otherwise. perSec limits remote
// requests per second; 0 disables the limit.
func NewFetcher(root string, perSec float64) (Fetcher, error) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPFetcher(root, perSec)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("asset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s: not a directory", root)
	}
	return NewDirFetcher(os.DirFS(root)), nil
}

// DirFetcher reads locations from a filesystem acting as the document root.
// The query string is ignored.
type DirFetcher struct {
	root fs.FS
}

// NewDirFetcher creates a fetcher over root.
func NewDirFetcher(root fs.FS) *DirFetcher {
	return &DirFetcher{root: root}
}

func (f *DirFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := fsPath(location)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.root, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// fsPath turns a document-relative location into an fs.FS path.
func fsPath(location string) (string, error) {
	p, _, _ := strings.Cut(location, "?")
	p = strings.TrimPrefix(p, "./")
	p = path.Clean(strings.TrimPrefix(p, "/"))
	if !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("%s: invalid path: %w", location, ErrNotFound)
	}
	return p, nil
}

// HTTPFetcher resolves locations against a base URL. The query string is
// kept so cache tokens reach the server.
type HTTPFetcher struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a fetcher rooted at base.
func NewHTTPFetcher(base string, perSec float64) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse asset base %q: %w", base, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	limit := rate.Inf
	if perSec > 0 {
		limit = rate.Limit(perSec)
	}
	return &HTTPFetcher{
		base:    u,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(limit, 4),
	}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ref, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", location, err)
	}
	u := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", u, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	if len(data) > maxAssetSize {
		return nil, fmt.Errorf("fetch %s: asset exceeds %d bytes", u, maxAssetSize)
	}
	return data, nil
}
