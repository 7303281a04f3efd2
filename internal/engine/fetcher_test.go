package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// MockFetcher simulates remote address books.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

const sampleVCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Alice\r\nBDAY:1990-02-16\r\nEND:VCARD\r\n"

// TestHTTPFetcher_Fetch_Success verifies a complete download and the User-Agent header.
func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.UserAgent, r.Header.Get("User-Agent"), "User-Agent mismatch")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(sampleVCard))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleVCard, string(body))
}

// TestHTTPFetcher_Fetch_Errors verifies proper error handling for non-200 statuses.
func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL)

			assert.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestHTTPFetcher_Fetch_Timeout ensures the client respects context deadlines.
func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_Fetch_InvalidURL(t *testing.T) {
	_, err := engine.NewHTTPFetcher().Fetch(context.Background(), string([]byte{0x7f}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)
}

func TestHTTPFetcher_Fetch_ProtocolSecurity(t *testing.T) {
	_, err := engine.NewHTTPFetcher().Fetch(context.Background(), "ftp://example.com/file.vcf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)
}

// -----------------------------------------------------------------------------
// Sources
// -----------------------------------------------------------------------------

func TestOpenSource_RemoteUsesFetcher(t *testing.T) {
	f := new(MockFetcher)
	url := "https://dav.example.com/contacts.vcf"
	f.On("Fetch", mock.Anything, url).Return(io.NopCloser(strings.NewReader(sampleVCard)), nil).Once()

	markers, err := engine.LoadBirthdaySource(context.Background(), f, "  "+url+"  ")

	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, markers.On(2018, 2, 16))
	f.AssertExpectations(t)
}

func TestOpenSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(sampleVCard), 0o600))

	markers, err := engine.LoadBirthdaySource(context.Background(), nil, path)

	require.NoError(t, err)
	assert.True(t, markers.Has(2030, 2, 16))
}

func TestOpenSource_Errors(t *testing.T) {
	_, err := engine.OpenSource(context.Background(), nil, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSourceEmpty)

	_, err = engine.LoadBirthdaySource(context.Background(), nil, filepath.Join(t.TempDir(), "missing.vcf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLoadBirthdays)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBirthdaySource_FetchFailure(t *testing.T) {
	f := new(MockFetcher)
	f.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := engine.LoadBirthdaySource(context.Background(), f, "http://example.com/a.vcf")

	assert.ErrorIs(t, err, assert.AnError)
}
