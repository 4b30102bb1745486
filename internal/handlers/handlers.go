// Package handlers exposes the Halaqa services as a JSON REST API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halaqahq/halaqa/internal/auth"
	"github.com/halaqahq/halaqa/internal/middleware"
	"github.com/halaqahq/halaqa/internal/rotation"
	"github.com/halaqahq/halaqa/internal/service"
	"github.com/halaqahq/halaqa/internal/storage"
)

// NewRouter wires all routes. Everything under /api except the auth
// endpoints requires a valid Bearer token.
func NewRouter(authHandler *AuthHandler, groupHandler *GroupHandler, paymentHandler *PaymentHandler, jwtManager *auth.JWTManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuth(jwtManager))

	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/groups", groupHandler.CreateGroup).Methods("POST")
	protected.HandleFunc("/groups/available", groupHandler.ListAvailableGroups).Methods("GET")
	protected.HandleFunc("/groups/{id}", groupHandler.GetGroup).Methods("GET")
	protected.HandleFunc("/groups/{id}/join", groupHandler.JoinGroup).Methods("POST")
	protected.HandleFunc("/groups/{id}/memberships", groupHandler.GetGroupMemberships).Methods("GET")
	protected.HandleFunc("/me/groups", groupHandler.GetMyGroups).Methods("GET")

	protected.HandleFunc("/groups/{id}/payments", paymentHandler.MakePayment).Methods("POST")
	protected.HandleFunc("/groups/{id}/payments", paymentHandler.GetMyPayments).Methods("GET")

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "halaqa"})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses and emits a
// structured error body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGroupFull),
		errors.Is(err, rotation.ErrSlotUnavailable),
		errors.Is(err, rotation.ErrNoSlotsAvailable),
		errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("invalid request body")

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}
