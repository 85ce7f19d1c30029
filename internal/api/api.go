// Package api exposes the application over a JSON HTTP interface.
// Handlers decode requests, call into the service layer and translate
// service errors into HTTP status codes.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage"
)

// Server wires the HTTP routes to the service layer.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	groups        *service.GroupService
	expenses      *service.ExpenseService
	settlements   *service.SettlementService
	balances      *service.BalanceService
}

// NewServer creates an API server over the given store and JWT manager.
func NewServer(store storage.Store, jwtManager *auth.JWTManager) *Server {
	return &Server{
		store:         store,
		authenticator: auth.NewPasswordAuthenticator(store),
		jwtManager:    jwtManager,
		groups:        service.NewGroupService(store),
		expenses:      service.NewExpenseService(store),
		settlements:   service.NewSettlementService(store),
		balances:      service.NewBalanceService(store),
	}
}

// Routes returns the full route table. Everything under /api except the auth
// endpoints requires a bearer token.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := middleware.RequireAuth(s.jwtManager)
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("GET /api/auth/me", s.handleCurrentUser)

	protect("POST /api/expenses", s.handleCreateExpense)
	protect("GET /api/expenses/{id}", s.handleGetExpense)
	protect("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	protect("POST /api/settlements", s.handleCreateSettlement)
	protect("GET /api/settlements", s.handleListSettlements)

	protect("GET /api/balances", s.handleUserBalances)
	protect("GET /api/balances/simplified", s.handleSimplifiedUserDebts)

	protect("POST /api/groups", s.handleCreateGroup)
	protect("GET /api/groups", s.handleListGroups)
	protect("GET /api/groups/{id}", s.handleGetGroup)
	protect("POST /api/groups/{id}/members", s.handleAddGroupMembers)
	protect("GET /api/groups/{id}/balances", s.handleGroupBalances)
	protect("GET /api/groups/{id}/simplify", s.handleSimplifiedGroupDebts)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service and storage errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrSelfSettlement),
		errors.Is(err, service.ErrInvalidSplit), errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
