package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.authMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/upgrade", s.handleUpgrade)

		r.Get("/plans", s.handlePlans)
		r.Get("/questions", s.handleQuestions)
		r.Get("/subjects", s.handleSubjects)
		r.Get("/usage", s.handleUsage)
		r.Get("/progress", s.handleProgress)

		r.Post("/quiz/start", s.handleStartQuiz)
		r.Get("/quiz", s.handleQuizState)
		r.Post("/quiz/answer", s.handleSubmitAnswer)
		r.Post("/quiz/next", s.handleNextQuestion)
		r.Post("/quiz/previous", s.handlePreviousQuestion)
		r.Post("/quiz/finish", s.handleFinishQuiz)
		r.Get("/quiz/result", s.handleQuizResult)

		r.Get("/events", s.handleEvents)
	})

	return r
}
