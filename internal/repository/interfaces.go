package repository

import (
	"context"

	"github.com/sandesh/prepquiz/internal/models"
)

// QuestionRepository handles question catalog access. The catalog is
// read-only at runtime; rows are seeded by migrations.
type QuestionRepository interface {
	Get(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, filter models.QuestionFilter) (int, error)
	Subjects(ctx context.Context) ([]string, error)
}
