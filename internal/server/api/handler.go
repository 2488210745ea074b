// Package api exposes the HTTP surface of the server: the auth endpoints the
// client's session core consumes and the sales endpoints behind the bearer
// middleware.
package api

import (
	"net/http"

	"github.com/avdeyev/bizdash/internal/logging"
	"github.com/avdeyev/bizdash/internal/server/repositories/sales"
	"github.com/avdeyev/bizdash/internal/server/users"
)

const maxBodyBytes = 1 << 20

// Handler wires HTTP endpoints to the user and sales services.
type Handler struct {
	log   logging.Logger
	users *users.Service
	sales sales.Repository
}

func NewHandler(log logging.Logger, userService *users.Service, salesRepo sales.Repository) *Handler {
	return &Handler{log: log, users: userService, sales: salesRepo}
}

// Register wires the API routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.HandleFunc("GET /api/user", h.requireAuth(h.handleUser))
	mux.HandleFunc("GET /api/sales/companies", h.requireAuth(h.handleCompanies))
	mux.HandleFunc("GET /api/sales/companies/{id}/contracts", h.requireAuth(h.handleCompanyContracts))
	mux.HandleFunc("GET /api/sales/daily-follow-up", h.requireAuth(h.handleDailyFollowUp))
}
