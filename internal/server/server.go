package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"contacts-api/internal/handler"
	"contacts-api/internal/middleware"
	"contacts-api/internal/service"
	"contacts-api/internal/session"
	"contacts-api/internal/store"
	"contacts-api/internal/token"
)

type Server struct {
	db          *sql.DB
	cache       *session.Cache
	issuer      *token.Issuer
	authH       *handler.AuthHandler
	userH       *handler.UserHandler
	contactH    *handler.ContactHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cache *session.Cache, issuer *token.Issuer, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	contactStore := store.NewContactStore(db)

	authSvc := service.NewAuthService(userStore, cache, issuer, logger.With("component", "auth"))
	userSvc := service.NewUserService(userStore)
	contactSvc := service.NewContactService(contactStore)

	return &Server{
		db:          db,
		cache:       cache,
		issuer:      issuer,
		authH:       handler.NewAuthHandler(authSvc, logger.With("component", "auth_handler")),
		userH:       handler.NewUserHandler(userSvc, logger.With("component", "user_handler")),
		contactH:    handler.NewContactHandler(contactSvc, logger.With("component", "contact_handler")),
		rateLimiter: middleware.NewRateLimiter(10, time.Minute),
		logger:      logger,
	}
}

// RateLimiter returns the limiter so the main loop can run periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes. Credential endpoints are rate-limited per client IP.
	limited := middleware.RateLimit(s.rateLimiter)
	outerMux.Handle("POST /auth/signup", limited(http.HandlerFunc(s.authH.SignUp)))
	outerMux.Handle("POST /auth/signin", limited(http.HandlerFunc(s.authH.SignIn)))
	outerMux.Handle("POST /auth/refresh", limited(http.HandlerFunc(s.authH.Refresh)))
	outerMux.HandleFunc("POST /user", s.userH.Create)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Everything else requires a valid access token.
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)
	outerMux.Handle("/", middleware.RequireAuth(s.issuer)(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/signout", s.authH.SignOut)

	mux.HandleFunc("GET /user", s.userH.List)
	mux.Handle("GET /user/{id}", middleware.RequireOwner(http.HandlerFunc(s.userH.Get)))
	mux.Handle("PATCH /user/{id}", middleware.RequireOwner(http.HandlerFunc(s.userH.Update)))
	mux.Handle("DELETE /user/{id}", middleware.RequireOwner(http.HandlerFunc(s.userH.Delete)))

	mux.HandleFunc("POST /contact", s.contactH.Create)
	mux.HandleFunc("GET /contact", s.contactH.List)
	mux.HandleFunc("GET /contact/{id}", s.contactH.Get)
	mux.HandleFunc("PATCH /contact/{id}", s.contactH.Update)
	mux.HandleFunc("DELETE /contact/{id}", s.contactH.Delete)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", "dependency", "database", "error", err)
		handler.WriteError(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := s.cache.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "dependency", "cache", "error", err)
		handler.WriteError(w, r, http.StatusServiceUnavailable, "cache unavailable")
		return
	}
	handler.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
