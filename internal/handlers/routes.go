package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"postboard/internal/middleware"
)

// RouterConfig carries the cross-cutting pieces the route tree needs.
type RouterConfig struct {
	// Auth guards the protected group.
	Auth func(http.Handler) http.Handler
	// LoginLimiter, when set, throttles the login route.
	LoginLimiter func(http.Handler) http.Handler
	// Logger, when set, enables per-request logging.
	Logger *zap.Logger
	// CORSOrigins defaults to allow-all when empty.
	CORSOrigins []string
}

// NewRouter mounts every route on a chi router. Public: registration,
// user lookup, login, health. Everything under /posts and /vote sits
// behind bearer auth.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}
	r.Use(chimw.Recoverer)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Hello World!"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public
	r.Post("/users/", h.Users.Register)
	r.Get("/users/{id}", h.Users.GetUser)
	if cfg.LoginLimiter != nil {
		r.With(cfg.LoginLimiter).Post("/login", h.Auth.Login)
	} else {
		r.Post("/login", h.Auth.Login)
	}

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(cfg.Auth)

		r.Get("/posts/", h.Posts.ListPosts)
		r.Post("/posts/", h.Posts.CreatePost)
		r.Get("/posts/{id}", h.Posts.GetPost)
		r.Put("/posts/{id}", h.Posts.UpdatePost)
		r.Delete("/posts/{id}", h.Posts.DeletePost)

		r.Post("/vote", h.Votes.Vote)
	})

	return r
}
