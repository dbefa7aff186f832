package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/limbo/missions/pkg/httputil"
	"github.com/limbo/missions/pkg/logging"
)

type contextKey string

const (
	requestIDContextKey contextKey = "Request-ID"
	uidContextKey       contextKey = "User-ID"
)

const (
	RequestIDHeader = "X-Request-ID"
	// Set by the gateway in front of the service after authentication
	UserIDHeader = "X-User-ID"
)

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SettingUpLoggerMiddleware attaches a request scoped logger and writes one
// access line per request.
func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lc := log.Logger.With().Str("from", r.RemoteAddr)
		if reqID, ok := r.Context().Value(requestIDContextKey).(string); ok && reqID != "" {
			lc = lc.Str("request_id", reqID)
		}
		logger := lc.Logger()
		r = r.WithContext(logging.WithLogger(r.Context(), logger))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request served")
	})
}

// UserIDMiddleware reads the caller id from X-User-ID and adds it to the
// request context and logger.
func (s *Server) UserIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			logger.Warn().Msg("request without user id")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no user id", nil)
			return
		}
		uid, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn().Str("raw", raw).Msg("invalid user id header")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid user id", nil)
			return
		}
		ctx := WithUID(r.Context(), uid)
		ctx = logging.WithLogger(ctx, logger.With().Str("uid", uid.String()).Logger())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetLoggerFromCtx(ctx context.Context) *zerolog.Logger {
	return logging.Ctx(ctx)
}

func WithUID(ctx context.Context, uid uuid.UUID) context.Context {
	return context.WithValue(ctx, uidContextKey, uid)
}

func GetUIDFromContext(r *http.Request) (uuid.UUID, error) {
	uid, ok := r.Context().Value(uidContextKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("uid invalid or doesn't exists")
	}
	return uid, nil
}
