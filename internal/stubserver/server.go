// Package stubserver is a self-contained development backend for the
// client. It implements the REST surface the views consume over an
// in-memory store, with JWT bearer authentication. cmd/stubserver runs it
// standalone; the view tests run it inside httptest.
package stubserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"fe-v2/pkg/logger"
)

// Server bundles the store, the signing secret and the router
type Server struct {
	store  *Store
	secret string
	log    *logger.Logger
}

// NewServer creates a stub backend over the given store
func NewServer(store *Store, secret string, log *logger.Logger) *Server {
	return &Server{store: store, secret: secret, log: log}
}

// Store exposes the backing store for seeding
func (s *Server) Store() *Store {
	return s.store
}

// Router builds the HTTP routing tree
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(auth(s.secret, s.log))

			r.Route("/user", func(r chi.Router) {
				r.Get("/get_user_profile", s.getUserProfile)
				r.Get("/get_user_by_id/{id}", s.getUserByID)
				r.Put("/update_profile", s.updateProfile)
				r.Post("/upload_avatar", s.uploadAvatar)
				r.Get("/get_activity_participants/{id}", s.getActivityParticipants)
			})

			r.Route("/activity", func(r chi.Router) {
				r.Get("/get_activity_by_id/{id}", s.getActivityByID)
				r.Get("/get_creator_activities", s.getCreatorActivities)
			})

			r.Route("/application", func(r chi.Router) {
				r.Post("/apply_activity", s.applyActivity)
				r.Get("/get_my_applications", s.getMyApplications)
				r.Get("/get_activity_applications", s.getActivityApplications)
				r.Get("/get_my_participations", s.getMyParticipations)
				r.Put("/update_application_status", s.updateApplicationStatus)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "接口不存在")
	})

	return r
}
