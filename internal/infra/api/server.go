package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"oja-pos-licensing/internal/infra/metrics"
	"oja-pos-licensing/internal/usecase"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server exposes the activation service over HTTP.
type Server struct {
	activation usecase.ActivationUseCase
	codegen    usecase.CodegenUseCase
	auth       *AuthManager
	apiKey     string
	validate   *validator.Validate
	checks     map[string]HealthCheck
	log        *zerolog.Logger
	now        func() time.Time
}

func NewServer(
	activationUC usecase.ActivationUseCase,
	codegenUC usecase.CodegenUseCase,
	auth *AuthManager,
	apiKey string,
	logger *zerolog.Logger,
) (*Server, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		activation: activationUC,
		codegen:    codegenUC,
		auth:       auth,
		apiKey:     apiKey,
		validate:   v,
		checks:     map[string]HealthCheck{},
		log:        logger,
		now:        time.Now,
	}, nil
}

// AddHealthCheck registers a dependency probed by GET /health.
func (s *Server) AddHealthCheck(name string, fn HealthCheck) {
	s.checks[name] = fn
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/activations", s.handleActivate)
		r.Get("/shops/{shopID}/subscription", s.handleStatus)

		r.Post("/admin/token", s.handleToken)
		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)
			r.Post("/admin/codes", s.handleIssueCodes)
			r.Delete("/shops/{shopID}/subscription", s.handleDeactivate)
		})
	})
}

// Handler returns the router wrapped in the standard middleware chain.
func (s *Server) Handler(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))
	if timeout > 0 {
		r.Use(Timeout(timeout))
	}
	s.Routes(r)
	return r
}
