// Package logging builds the process logger and adapts it to the engine and
// HTTP layers.
package logging

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// New returns a zerolog logger writing to w at the given level. format is
// "json" or "console". A nil writer means stderr.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch strings.ToLower(format) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Adapter satisfies the engine's printf-style Logger on top of zerolog.
type Adapter struct {
	L zerolog.Logger
}

// NewAdapter wraps l, tagging every entry with component.
func NewAdapter(l zerolog.Logger, component string) *Adapter {
	return &Adapter{L: l.With().Str("component", component).Logger()}
}

func (a *Adapter) Debugf(format string, args ...any) { a.L.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.L.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.L.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.L.Error().Msgf(format, args...) }

// Middleware attaches l to every request context and writes one access log
// line per request. It expects chi's RequestID middleware to run first.
func Middleware(l zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	return func(next http.Handler) http.Handler {
		return hlog.NewHandler(l)(requestID(access(next)))
	}
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}
