// Package api exposes the ledger operations as a JSON HTTP API for the
// browser client.
//
// Error mapping follows the core's failure taxonomy: unknown IDs map to 404
// with a JSON error body, policy no-ops return 200 with the unchanged
// entity, and persistence failures map to 500.
package api

import (
	"net/http"

	"github.com/avasquez/tally/internal/auth"
	"github.com/avasquez/tally/internal/middleware"
	"github.com/avasquez/tally/internal/service"
)

// Server wires the services to HTTP routes.
type Server struct {
	groups   *service.GroupService
	expenses *service.ExpenseService
	auth     *service.AuthService
	jwt      *auth.JWTManager
}

// NewServer creates the HTTP server facade over the services.
func NewServer(groups *service.GroupService, expenses *service.ExpenseService, authSvc *service.AuthService, jwt *auth.JWTManager) *Server {
	return &Server{
		groups:   groups,
		expenses: expenses,
		auth:     authSvc,
		jwt:      jwt,
	}
}

// Routes builds the route table. Everything under /api except the auth
// endpoints requires a valid session token.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(s.jwt)

	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("GET /api/auth/me", protected(s.handleCurrentUser))

	mux.Handle("GET /api/groups", protected(s.handleListGroups))
	mux.Handle("POST /api/groups", protected(s.handleCreateGroup))
	mux.Handle("GET /api/groups/{id}", protected(s.handleGetGroup))
	mux.Handle("DELETE /api/groups/{id}", protected(s.handleDeleteGroup))
	mux.Handle("POST /api/groups/{id}/members", protected(s.handleAddMember))
	mux.Handle("DELETE /api/groups/{id}/members/{userId}", protected(s.handleRemoveMember))

	mux.Handle("GET /api/groups/{id}/expenses", protected(s.handleGroupExpenses))
	mux.Handle("POST /api/groups/{id}/expenses", protected(s.handleAddExpense))
	mux.Handle("GET /api/groups/{id}/balances", protected(s.handleBalances))
	mux.Handle("POST /api/expenses/{id}/settle", protected(s.handleSettleExpense))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
