package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-calendarview/internal/config"
	"github.com/tartampluch/go-calendarview/internal/engine"
)

// cacheItem stores a rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers; empty for ETag-only items
}

// newCacheItem hashes data for the ETag. A zero modified time leaves the item
// without Last-Modified, so only If-None-Match can revalidate it.
func newCacheItem(data []byte, contentType string, modified time.Time) *cacheItem {
	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:        data,
		contentType: contentType,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
	if !modified.IsZero() {
		item.lastModified = modified.UTC().Format(http.TimeFormat)
	}
	return item
}

// CalendarServer serves the published month feed on "/" and builds any other
// month on demand under /months/{year}/{month}.ics|json.
type CalendarServer struct {
	// cache is read on every request and replaced on publish only.
	cache   atomic.Pointer[cacheItem]
	markers atomic.Pointer[engine.Markers]
	builder atomic.Pointer[engine.Builder]

	Port  string
	Clock engine.Clock
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port string, builder *engine.Builder) *CalendarServer {
	if builder == nil {
		builder = engine.NewBuilder(engine.NewSolarHolidayTable(), engine.NewAlmanacConverter())
	}
	s := &CalendarServer{
		Port:  port,
		Clock: engine.RealClock{},
	}
	s.builder.Store(builder)
	return s
}

// SetBuilder replaces the grid builder, e.g. after a week-start change.
// A nil builder is ignored.
func (s *CalendarServer) SetBuilder(b *engine.Builder) {
	if b != nil {
		s.builder.Store(b)
	}
}

// Builder returns the grid builder used for every feed.
func (s *CalendarServer) Builder() *engine.Builder {
	return s.builder.Load()
}

// Handler returns the chi router of the feed.
func (s *CalendarServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(config.RouteRoot, s.handleCalendarRequest)
	r.Head(config.RouteRoot, s.handleCalendarRequest)
	r.Get(config.RouteMonth, s.handleMonthRequest)
	r.Head(config.RouteMonth, s.handleMonthRequest)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the feed served on "/".
func (s *CalendarServer) Update(data []byte) {
	item := newCacheItem(data, config.MimeTextCalendar, s.Clock.Now())
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// SetMarkers replaces the birthdays exported with every month.
func (s *CalendarServer) SetMarkers(m engine.Markers) {
	s.markers.Store(&m)
}

func (s *CalendarServer) currentMarkers() engine.Markers {
	if m := s.markers.Load(); m != nil {
		return *m
	}
	return nil
}

// Publish renders year/month as iCalendar and makes it the "/" feed.
func (s *CalendarServer) Publish(year, month int) error {
	grid, err := s.Builder().BuildMonthGrid(year, month)
	if err != nil {
		return err
	}
	data, err := engine.ExportICS(grid, s.currentMarkers(), s.Clock.Now())
	if err != nil {
		return err
	}
	s.Update(data)
	return nil
}

// handleCalendarRequest serves the published ICS content.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	serveItem(w, r, item)
}

// handleMonthRequest builds the requested month and serves it as ICS or JSON.
func (s *CalendarServer) handleMonthRequest(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, config.ParamFile)
	ext := path.Ext(file)

	year, errYear := strconv.Atoi(chi.URLParam(r, config.ParamYear))
	month, errMonth := strconv.Atoi(strings.TrimSuffix(file, ext))
	if errYear != nil || errMonth != nil {
		http.Error(w, config.HTTPMsgBadRequest, http.StatusBadRequest)
		return
	}
	if ext != config.ExtICS && ext != config.ExtJSON {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
	)

	grid, err := s.Builder().BuildMonthGrid(year, month)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidArgument) || errors.Is(err, engine.ErrOutOfRange) {
			log.Debug(config.HTTPMsgBadRequest, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgBadRequest, http.StatusBadRequest)
			return
		}
		log.Error(config.ErrBuildGrid, config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	now := s.Clock.Now()
	var item *cacheItem
	if ext == config.ExtICS {
		data, err := engine.ExportICS(grid, s.currentMarkers(), now)
		if err != nil {
			log.Error(config.ErrICalEncode, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		item = newCacheItem(data, config.MimeTextCalendar, time.Time{})
	} else {
		data, err := json.Marshal(grid)
		if err != nil {
			log.Error(config.ErrJSONEncode, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		item = newCacheItem(data, config.MimeJSON, time.Time{})
	}
	serveItem(w, r, item)
}

// serveItem writes item with conditional request support.
func serveItem(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	if item.lastModified != "" {
		w.Header().Set(config.HeaderLastModified, item.lastModified)
	}

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" && item.lastModified != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
