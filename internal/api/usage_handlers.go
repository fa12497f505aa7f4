package api

import "net/http"

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	usage := s.Gate.Usage(r.Context())

	writeJSON(w, r, http.StatusOK, map[string]any{
		"usage":     usage,
		"isPremium": user.Premium(),
		"remaining": usage.Remaining(),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Progress.Progress(r.Context()))
}
