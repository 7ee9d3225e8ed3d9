package api

import (
	"errors"
	"net/http"

	"github.com/avasquez/tally/internal/auth"
	"github.com/avasquez/tally/internal/middleware"
	"github.com/avasquez/tally/internal/models"
)

type credentialsRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// sanitizeUser strips the password hash before the user leaves the API.
func sanitizeUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		User:  sanitizeUser(session.User),
		Token: session.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		User:  sanitizeUser(session.User),
		Token: session.Token,
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	// Identity comes from the validated token; no storage round trip needed.
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    middleware.GetUserID(r.Context()),
		"email": middleware.GetEmail(r.Context()),
	})
}
