package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/c25k/internal/planner"
	"github.com/claude/c25k/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   storage.Store
	planner *planner.Client
	log     *slog.Logger
	apiKey  string
	router  chi.Router

	// locks serializes session recording per user, keeping the
	// read-modify-write of the progress aggregate atomic.
	locks sync.Map
}

// New creates a new Server with all routes configured. planClient may be nil
// when no external plan service is configured.
func New(store storage.Store, planClient *planner.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:   store,
		planner: planClient,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/export-formats", s.handleExportFormats)
		r.Get("/program", s.handleProgram)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/profiles", s.handleCreateProfile)
			r.Route("/profiles/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProfile)
				r.Put("/", s.handleUpdateProfile)
				r.Get("/plan", s.handlePlan)
				r.Get("/tips", s.handleTips)
				r.Post("/sessions", s.handleRecordSession)
				r.Get("/sessions", s.handleListSessions)
				r.Get("/progress", s.handleProgress)
				r.Get("/calendar", s.handleCalendar)
				r.Get("/export/plan", s.handleExportPlan)
				r.Get("/export/{platform}", s.handleExportWorkouts)
			})
		})
	})
}

func (s *Server) userLock(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
