package api

import (
	"github.com/sandesh/prepquiz/internal/auth"
	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/gate"
	"github.com/sandesh/prepquiz/internal/progress"
	"github.com/sandesh/prepquiz/internal/quiz"
	"github.com/sandesh/prepquiz/internal/repository"
)

// Server holds the wired services behind the HTTP surface.
type Server struct {
	AuthService      *auth.Service
	Gate             gate.UsageGate
	Quiz             *quiz.Manager
	Progress         *progress.Tracker
	Questions        repository.QuestionRepository
	Bus              *event.Bus
	DefaultTimeLimit int // minutes, applied when a start request omits one
}
