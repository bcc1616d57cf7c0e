package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUserNotFound signals the token subject has no user row.
	ErrUserNotFound = errors.New("store: user not found")
	// ErrSlotTaken signals a live appointment already holds the slot.
	ErrSlotTaken = errors.New("store: slot already taken")
	// ErrNotFound covers a missing row, a non-pending row, and a row owned by
	// someone else; callers must not distinguish them.
	ErrNotFound = errors.New("store: appointment not found")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
