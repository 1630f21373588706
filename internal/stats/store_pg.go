package stats

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed stats store.
func NewPGStore(db *sql.DB) Store {
	return &pgStore{DB: db}
}

func (s *pgStore) Increment(ctx context.Context, userID string, promptTokens, completionTokens, totalTokens int) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO parse_stats (user_id, resumes_parsed, prompt_tokens, completion_tokens, total_tokens)
VALUES ($1, 1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
  resumes_parsed = parse_stats.resumes_parsed + 1,
  prompt_tokens = parse_stats.prompt_tokens + EXCLUDED.prompt_tokens,
  completion_tokens = parse_stats.completion_tokens + EXCLUDED.completion_tokens,
  total_tokens = parse_stats.total_tokens + EXCLUDED.total_tokens,
  updated_at = now()`,
		userID, promptTokens, completionTokens, totalTokens)
	return err
}

func (s *pgStore) Get(ctx context.Context, userID string) (Stats, error) {
	var row Stats
	err := s.DB.QueryRowContext(ctx, `
SELECT user_id, resumes_parsed, prompt_tokens, completion_tokens, total_tokens, updated_at
FROM parse_stats WHERE user_id = $1`, userID).Scan(
		&row.UserID, &row.ResumesParsed, &row.PromptTokens, &row.CompletionTokens, &row.TotalTokens, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Stats{UserID: userID}, nil
		}
		return Stats{}, err
	}
	return row, nil
}
