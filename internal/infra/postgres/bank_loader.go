package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"adaptive-quiz/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader reads question rows from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT question, subject, difficulty, correct_answer, options FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q          domain.Question
			difficulty string
			rawOptions []byte
		)
		if err := rows.Scan(&q.Text, &q.Subject, &difficulty, &q.CorrectAnswer, &rawOptions); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		parsed, ok := domain.ParseDifficulty(difficulty)
		if !ok {
			return nil, fmt.Errorf("question %q: unknown difficulty %q", q.Text, difficulty)
		}
		q.Difficulty = parsed
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("question %q: unmarshal options: %w", q.Text, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	return questions, nil
}
