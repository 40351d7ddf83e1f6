package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"studiofin-backend/internal/security"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Bills      *BillHandler
	Students   *StudentHandler
	Categories *CategoryHandler
	Audit      *AuditHandler
}

// NewRouter builds the API router. Every /api route runs behind the session
// middleware; mutations additionally run through the guarded action pipeline.
func NewRouter(verifier security.SessionVerifier, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(Authenticate(verifier))

	api.HandleFunc("/bills", h.Bills.List).Methods(http.MethodGet)
	api.HandleFunc("/bills", h.Bills.Create).Methods(http.MethodPost)
	api.HandleFunc("/bills/{id}", h.Bills.Update).Methods(http.MethodPut)
	api.HandleFunc("/bills/{id}/pay", h.Bills.Pay).Methods(http.MethodPost)
	api.HandleFunc("/bills/{id}", h.Bills.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/students", h.Students.List).Methods(http.MethodGet)
	api.HandleFunc("/students", h.Students.Enroll).Methods(http.MethodPost)
	api.HandleFunc("/students/{id}", h.Students.Update).Methods(http.MethodPut)
	api.HandleFunc("/students/{id}/deactivate", h.Students.Deactivate).Methods(http.MethodPost)

	api.HandleFunc("/categories", h.Categories.List).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.Categories.Create).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.Categories.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/audit", h.Audit.List).Methods(http.MethodGet)

	return r
}
