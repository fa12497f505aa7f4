package api

import (
	"net/http"
	"strconv"

	"github.com/sandesh/prepquiz/internal/models"
)

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	filter := models.QuestionFilter{
		Subject:    r.URL.Query().Get("subject"),
		Topic:      r.URL.Query().Get("topic"),
		Difficulty: r.URL.Query().Get("difficulty"),
		FreeOnly:   !user.Premium(),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	questions, err := s.Questions.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.Questions.Count(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"questions": questions,
		"total":     total,
	})
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.Questions.Subjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, subjects)
}
