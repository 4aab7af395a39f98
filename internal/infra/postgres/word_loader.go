package postgres

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// WordLoader loads a tier's ordered word list from the words table.
type WordLoader struct {
	pool *pgxpool.Pool
}

func NewWordLoader(pool *pgxpool.Pool) *WordLoader {
	return &WordLoader{pool: pool}
}

func (l *WordLoader) LoadWords(ctx context.Context, tier domain.Tier) ([]string, error) {
	rows, err := l.pool.Query(ctx, `SELECT word FROM words WHERE tier=$1 ORDER BY position`, string(tier))
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return out, nil
}
