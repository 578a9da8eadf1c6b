package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

// Routes are the API subrouters a handler registers on.
type Routes struct {
	Public  *mux.Router // no login
	Authed  *mux.Router // any logged-in user
	Student *mux.Router // /me, students only
	Admin   *mux.Router // /admin, staff only
}

type Registrar interface {
	Register(r Routes)
}

// NewRouter builds the /api/v1 tree and the health endpoints.
func NewRouter(health *HealthHandler, auth *AuthMiddleware, handlers ...Registrar) *mux.Router {
	router := mux.NewRouter()

	if health != nil {
		router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
		router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	student := api.PathPrefix("/me").Subrouter()
	student.Use(auth.RequireAuth, RequireRole(session.RoleStudent))

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAuth, RequireRole(session.RoleAdmin))

	authed := api.PathPrefix("/session").Subrouter()
	authed.Use(auth.RequireAuth)

	routes := Routes{Public: api, Authed: authed, Student: student, Admin: admin}
	for _, h := range handlers {
		h.Register(routes)
	}

	return router
}

// WithCORS wraps the whole router so preflight requests are answered even
// though no route is registered for OPTIONS.
func WithCORS(router http.Handler, allowedOrigin string) http.Handler {
	return response.CORSMiddleware(allowedOrigin)(router)
}
