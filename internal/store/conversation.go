package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ensureConversation inserts the conversation row for an unordered user pair
// if it does not exist yet. The pair is normalized (smaller id first) and the
// table carries a unique (user_a, user_b) constraint, so ON CONFLICT DO
// NOTHING makes this a single race-free conditional insert regardless of
// argument order or concurrent callers.
func ensureConversation(ctx context.Context, tx pgx.Tx, a, b int64) error {
	if a == b {
		return fmt.Errorf("store: conversation requires two distinct users")
	}
	if a > b {
		a, b = b, a
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO conversations (user_a, user_b) VALUES ($1,$2)
		 ON CONFLICT (user_a, user_b) DO NOTHING`, a, b,
	)
	if err != nil {
		return fmt.Errorf("store: ensure conversation: %w", err)
	}
	return nil
}

// ConversationCount reports how many conversation rows exist for the
// unordered pair; at most one by construction.
func (s *Store) ConversationCount(ctx context.Context, a, b int64) (int, error) {
	if a > b {
		a, b = b, a
	}
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversations WHERE user_a = $1 AND user_b = $2`, a, b,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count conversations: %w", err)
	}
	return n, nil
}
