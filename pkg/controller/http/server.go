package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindcorps/psyrisk/pkg/usecase"
)

const defaultMaxBodyBytes = 1 << 20

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	maxBodyBytes int64
}

type Options func(*Server)

// WithMaxBodyBytes limits the size of JSON request bodies
func WithMaxBodyBytes(n int64) Options {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		uc:           uc,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.getCatalog)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.listCompanies)
			r.Post("/", s.registerCompany)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", s.getCompany)
				r.Get("/analysis", s.analyzeCompany)

				r.Route("/sectors/{sectorID}", func(r chi.Router) {
					r.Get("/analysis", s.analyzeSector)
					r.Get("/responses", s.listResponses)
					r.Post("/responses", s.submitResponse)
					r.Get("/probability", s.getProbability)
					r.Put("/probability", s.saveProbability)
					r.Get("/report", s.getReport)
					r.Put("/report", s.saveReport)
					r.Get("/document", s.getDocument)
					r.Post("/export", s.exportReport)
					r.Post("/insight", s.generateInsight)
				})
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
