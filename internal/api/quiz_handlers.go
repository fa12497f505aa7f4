package api

import (
	"net/http"

	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
)

type startQuizRequest struct {
	Subject          string `json:"subject"`
	Topic            string `json:"topic"`
	Difficulty       string `json:"difficulty"`
	Count            int    `json:"count"`
	TimeLimitMinutes *int   `json:"timeLimitMinutes"`
}

type quizStateResponse struct {
	Session         *models.QuizSession    `json:"session"`
	CurrentQuestion *models.Question       `json:"currentQuestion"`
	Progress        models.SessionProgress `json:"progress"`
	TimeRemaining   int                    `json:"timeRemaining"`
	CanProceed      bool                   `json:"canProceed"`
	Usage           models.FreeUsage       `json:"usage"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	var req startQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	count := req.Count
	if count <= 0 {
		count = 10
	}

	questions, err := s.Questions.List(r.Context(), models.QuestionFilter{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		FreeOnly:   !user.Premium(),
		Random:     true,
		Limit:      count,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if len(questions) == 0 {
		handleError(w, r, errors.NewNotFoundError("questions", "matching filter"))
		return
	}

	timeLimit := req.TimeLimitMinutes
	if timeLimit == nil {
		def := s.DefaultTimeLimit
		timeLimit = &def
	}

	if _, err := s.Quiz.Start(r.Context(), user, questions, timeLimit); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("quiz started: questions=%d, time_limit=%d", len(questions), *timeLimit)
	s.writeQuizState(w, r)
}

func (s *Server) writeQuizState(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	session := s.Quiz.Snapshot()

	resp := quizStateResponse{
		Session:       session,
		Progress:      s.Quiz.Progress(),
		TimeRemaining: s.Quiz.TimeRemaining(),
		Usage:         s.Gate.Usage(r.Context()),
	}
	if session != nil {
		resp.CurrentQuestion = session.CurrentQuestion()
		resp.CanProceed = s.Quiz.CanProceed(r.Context(), user)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleQuizState(w http.ResponseWriter, r *http.Request) {
	s.writeQuizState(w, r)
}

type answerRequest struct {
	Option int `json:"option"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Quiz.SubmitAnswer(r.Context(), req.Option); err != nil {
		handleError(w, r, err)
		return
	}
	s.writeQuizState(w, r)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.Quiz.Advance(r.Context(), user); err != nil {
		handleError(w, r, err)
		return
	}
	s.writeQuizState(w, r)
}

func (s *Server) handlePreviousQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.Quiz.Retreat(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	s.writeQuizState(w, r)
}

func (s *Server) handleFinishQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.Quiz.Finish(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Quiz.Result()
	if err != nil {
		handleError(w, r, err)
		return
	}
	progress := s.Progress.Record(r.Context(), *result)

	writeJSON(w, r, http.StatusOK, map[string]any{
		"result":   result,
		"progress": progress,
	})
}

func (s *Server) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.Quiz.Result()
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
