package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-calendarview/internal/config"
)

// Fetcher retrieves a remote vCard stream.
// This interface allows for mocking in tests and decoupling from the network layer.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher using the standard net/http client.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads a vCard file. Query parameters are stripped from logs since
// shared address-book links often embed tokens there.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Server returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser pairs a size-limited reader with the original body closer.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// OpenSource opens a birthday source, either an http(s) URL or a local path.
// A leading "~/" is expanded to the user's home directory.
func OpenSource(ctx context.Context, f Fetcher, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if strings.HasPrefix(source, config.SchemeHTTP+"://") || strings.HasPrefix(source, config.SchemeHTTPS+"://") {
		if f == nil {
			f = NewHTTPFetcher()
		}
		return f.Fetch(ctx, source)
	}
	if rest, ok := strings.CutPrefix(source, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			source = filepath.Join(home, rest)
		}
	}
	return os.Open(source)
}

// LoadBirthdaySource opens the source and decodes it into Markers.
func LoadBirthdaySource(ctx context.Context, f Fetcher, source string) (Markers, error) {
	rc, err := OpenSource(ctx, f, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBirthdays, err)
	}
	defer func() { _ = rc.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadBirthdays(rc)
}
