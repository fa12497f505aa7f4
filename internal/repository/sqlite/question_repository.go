package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/models"
	"github.com/sandesh/prepquiz/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const questionColumns = "id, prompt, option_a, option_b, option_c, option_d, correct_answer, explanation, difficulty, subject, topic, is_premium"

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a QuestionRepository backed by SQLite.
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%s", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+questionColumns+`
FROM questions
WHERE id = ?
`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found: id=%s", id)
			return nil, nil
		}
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: subject=%s, topic=%s, difficulty=%s, free_only=%t",
		filter.Subject, filter.Topic, filter.Difficulty, filter.FreeOnly)

	query := sqlBuilder.Select(
		"id", "prompt", "option_a", "option_b", "option_c", "option_d",
		"correct_answer", "explanation", "difficulty", "subject", "topic", "is_premium",
	).From("questions")
	query = applyFilter(query, filter)

	if filter.Random {
		query = query.OrderBy("RANDOM()")
	} else {
		query = query.OrderBy("id ASC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, *q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query := applyFilter(sqlBuilder.Select("COUNT(*)").From("questions"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *questionRepository) Subjects(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT subject FROM questions ORDER BY subject`)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			log.Error("failed to scan subject row: %v", err)
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func applyFilter(query squirrel.SelectBuilder, filter models.QuestionFilter) squirrel.SelectBuilder {
	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.FreeOnly {
		query = query.Where(squirrel.Eq{"is_premium": false})
	}
	return query
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var optA, optB, optC, optD string
	var explanation sql.NullString
	if err := row.Scan(&q.ID, &q.Prompt, &optA, &optB, &optC, &optD,
		&q.CorrectAnswer, &explanation, &q.Difficulty, &q.Subject, &q.Topic, &q.IsPremium); err != nil {
		return nil, err
	}
	q.Options = []string{optA, optB, optC, optD}
	q.Explanation = explanation.String
	return &q, nil
}
