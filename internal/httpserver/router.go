package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"userhub/internal/auth"
	"userhub/internal/users"
)

func NewRouter(logger *zap.Logger, authSvc *auth.Service, userHandler *users.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	// Health check
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Authenticate(authSvc))
	authed.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/change-password", userHandler.ChangePassword).Methods(http.MethodPost)

	// Authenticated + admin
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.Authenticate(authSvc), auth.RequireAdmin)
	admin.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", userHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", userHandler.Delete).Methods(http.MethodDelete)

	// CORS wrapper (simple, for the SPA during local development).
	return withCORS(r)
}
