// Package requestlog provides an HTTP middleware that logs every
// request/response pair: method, URL, client IP, elapsed time and the
// textual bodies of both the request and the response.
//
// The middleware buffers the response until the downstream handler
// returns, so it should be installed outermost in the handler chain.
// It also reads the whole request body into memory before the downstream
// handler runs, so limits such as http.MaxBytesReader applied further down
// no longer bound memory; cap request sizes in front of this middleware
// (proxy or server limits) when that matters.
package requestlog

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Middleware logs one record per request through the logger it was built with.
// It holds no per-request state and is safe for concurrent use.
type Middleware struct {
	logger zerolog.Logger
	format Formatter
	now    func() time.Time
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithFormatter replaces Format as the record layout.
func WithFormatter(f Formatter) Option {
	return func(m *Middleware) {
		if f != nil {
			m.format = f
		}
	}
}

// WithClock replaces time.Now for the record timestamp and the timer.
func WithClock(now func() time.Time) Option {
	return func(m *Middleware) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns a Middleware writing records to logger.
func New(logger zerolog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		logger: logger,
		format: Format,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Use is the registration hook for a handler chain.
func Use(logger zerolog.Logger, opts ...Option) func(http.Handler) http.Handler {
	return New(logger, opts...).Handler
}

// Handler wraps next. The bytes next writes reach w unchanged and in order,
// including when next panics; the panic is not recovered.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqBody, err := rewindBody(r)
		if err != nil {
			m.logger.Warn().Err(err).Str("method", r.Method).Str("path", path(r)).Msg("Reading request body")
		}

		capture := newResponseCapture(w)
		completed := false
		defer func() {
			err := capture.commit()
			if err == nil && !completed {
				// net/http drops unflushed output when a handler panics.
				err = http.NewResponseController(w).Flush()
			}
			if err != nil {
				m.logger.Debug().Err(err).Str("method", r.Method).Str("path", path(r)).Msg("Writing buffered response")
			}
		}()

		entry := Entry{
			Method: r.Method,
			Scheme: scheme(r),
			Host:   r.Host,
			Path:   path(r),
			Query:  query(r),
			IP:     clientIP(r),
		}

		start := m.now()
		defer func() {
			if !completed {
				m.logger.Error().
					Str("method", entry.Method).
					Str("url", entry.URL()).
					Str("ip", entry.IP).
					Dur("elapsed", m.since(start)).
					Msg("Request aborted")
			}
		}()

		next.ServeHTTP(capture.writer(), r)

		entry.Elapsed = m.since(start)
		completed = true

		entry.Time = m.now()
		entry.RequestBody = flatten(reqBody)
		entry.ResponseBody = capture.body()
		m.logger.Info().Msg(m.format(entry))
	})
}

func (m *Middleware) since(start time.Time) time.Duration {
	d := m.now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
