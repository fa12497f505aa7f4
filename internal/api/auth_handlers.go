package api

import (
	"net/http"

	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, loginResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.AuthService.Logout(r.Context())
	writeJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewUnauthorizedError("not logged in"))
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

type upgradeRequest struct {
	Tier string `json:"tier"`
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req upgradeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.AuthService.Upgrade(r.Context(), userFromContext(r.Context()), req.Tier)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("subscription upgraded to %s", req.Tier)
	writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.Plans)
}
