package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/PrafullShinde28/CAMPUSAI/internal/handlers"
	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/websocket"
)

// Handlers bundles every route target the API mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	StudyPlan    *handlers.StudyPlanHandler
	Quiz         *handlers.QuizHandler
	StudyGroup   *handlers.StudyGroupHandler
	Idea         *handlers.IdeaHandler
	Learning     *handlers.LearningHandler
	Classroom    *handlers.ClassroomHandler
	Notification *handlers.NotificationHandler
	PeerMatch    *handlers.PeerMatchHandler
}

type Options struct {
	FrontendURL string
	StaticDir   string
	// VerifyLimiter throttles POST /api/auth/verify. Defaults to 10 req/min per IP.
	VerifyLimiter *middleware.RateLimiter
}

func New(
	auth *middleware.Authenticator,
	h Handlers,
	wsHub *websocket.Hub,
	log *logger.Logger,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	// PeerAddr must run before RealIP so rate limits key on the TCP peer.
	r.Use(middleware.PeerAddr)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler)

	verifyLimiter := opts.VerifyLimiter
	if verifyLimiter == nil {
		verifyLimiter = middleware.NewRateLimiter(10, time.Minute)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth (public) ────
		r.With(verifyLimiter.Middleware).Post("/auth/verify", h.Auth.Verify)

		// ──── WebSocket (token in query) ────
		r.Get("/ws", wsHub.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", h.User.GetProfile)
				r.Put("/profile", h.User.UpdateProfile)
			})

			r.Route("/study-plans", func(r chi.Router) {
				r.Get("/", h.StudyPlan.List)
				r.Post("/", h.StudyPlan.Create)
				r.Post("/generate", h.StudyPlan.Generate)
				r.Put("/{id}", h.StudyPlan.Update)
			})

			r.Route("/quizzes", func(r chi.Router) {
				r.Get("/", h.Quiz.List)
				r.Post("/generate", h.Quiz.Generate)
				r.Get("/{id}", h.Quiz.Get)
				r.Put("/{id}/complete", h.Quiz.Complete)
			})

			r.Route("/study-groups", func(r chi.Router) {
				r.Get("/", h.StudyGroup.List)
				r.Get("/my", h.StudyGroup.ListMine)
				r.Post("/", h.StudyGroup.Create)
				r.Get("/{id}", h.StudyGroup.Get)
				r.Post("/{id}/join", h.StudyGroup.Join)
			})

			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", h.Idea.List)
				r.Post("/", h.Idea.Create)
				r.Post("/{id}/like", h.Idea.Like)
			})

			r.Post("/learning-buddy/explain", h.Learning.Explain)
			r.Get("/analytics/performance", h.Learning.Performance)

			r.Route("/classroom", func(r chi.Router) {
				r.Get("/assignments", h.Classroom.Assignments)
				r.Get("/courses", h.Classroom.Courses)
			})

			r.Get("/peer-matches", h.PeerMatch.List)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Put("/{id}/read", h.Notification.MarkRead)
			})
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(spaHandler(opts.StaticDir))
	}

	return r
}

// spaHandler serves files from dir and falls back to index.html for client
// routes. API paths keep their 404.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not found"}`))
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
