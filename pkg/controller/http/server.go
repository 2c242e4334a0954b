package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// rootMessage is the body of GET /
const rootMessage = "qainfo is running"

type Server struct {
	router             *chi.Mux
	slackUC            SlackUseCase
	oauthUC            OAuthUseCase
	slackSigningSecret string
	requestLog         bool
}

type Options func(*Server)

// WithSlack enables /hooks/slack/* verified with the signing secret
func WithSlack(uc SlackUseCase, signingSecret string) Options {
	return func(s *Server) {
		s.slackUC = uc
		s.slackSigningSecret = signingSecret
	}
}

// WithOAuth enables GET /oauth
func WithOAuth(uc OAuthUseCase) Options {
	return func(s *Server) {
		s.oauthUC = uc
	}
}

// WithRequestLog dumps Slack request payloads at debug level
func WithRequestLog(enabled bool) Options {
	return func(s *Server) {
		s.requestLog = enabled
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", rootHandler)

	if s.oauthUC != nil {
		r.Get("/oauth", oauthCallbackHandler(s.oauthUC))
	}

	// Slack endpoints - No auth required, uses signature verification
	if s.slackUC != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
			if s.requestLog {
				r.Use(requestDumper)
			}

			r.Post("/event", NewSlackEventHandler(s.slackUC).ServeHTTP)
			r.Post("/command", NewSlackCommandHandler(s.slackUC).ServeHTTP)
			r.Post("/interaction", NewSlackInteractionHandler(s.slackUC).ServeHTTP)
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(rootMessage)); err != nil {
		logging.From(r.Context()).Error("failed to write response", "error", err)
	}
}

// accessLogger is a middleware that logs HTTP requests. The request logger
// carrying the request ID is stored in the context for handlers.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
