package store

import (
	"context"
	"fmt"
	"time"

	"calendar-service/internal/model"
	"calendar-service/internal/schedule"
)

func (s *Store) CreateAvailabilityBlock(ctx context.Context, b *model.AvailabilityBlock) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO availability_blocks (provider_id, starts_at, ends_at, blocked)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at`,
		b.ProviderID, b.StartsAt, b.EndsAt, b.Blocked,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: create availability block: %w", err)
	}
	return nil
}

func (s *Store) ListAvailabilityByProvider(ctx context.Context, providerID int64) ([]model.AvailabilityBlock, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, provider_id, starts_at, ends_at, blocked, created_at
		 FROM availability_blocks
		 WHERE provider_id = $1
		 ORDER BY starts_at`, providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list availability: %w", err)
	}
	defer rows.Close()

	var out []model.AvailabilityBlock
	for rows.Next() {
		var b model.AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.ProviderID, &b.StartsAt, &b.EndsAt, &b.Blocked, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan availability block: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list availability: %w", err)
	}
	return out, nil
}

// ProviderCalendar loads the raw intervals the slot evaluator works from:
// declared working blocks, and occupied time made of block-outs plus accepted
// appointments expanded to [start, start+duration).
func (s *Store) ProviderCalendar(ctx context.Context, providerID int64) (work, busy []schedule.Block, err error) {
	rows, err := s.pool.Query(ctx,
		`SELECT starts_at, ends_at, blocked
		 FROM availability_blocks WHERE provider_id = $1`, providerID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("store: load availability blocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b schedule.Block
		var blocked bool
		if err := rows.Scan(&b.Start, &b.End, &blocked); err != nil {
			return nil, nil, fmt.Errorf("store: scan availability block: %w", err)
		}
		if blocked {
			busy = append(busy, b)
		} else {
			work = append(work, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: load availability blocks: %w", err)
	}

	apptRows, err := s.pool.Query(ctx,
		`SELECT starts_at, duration_min
		 FROM appointments WHERE provider_id = $1 AND status = 'accepted'`, providerID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("store: load accepted appointments: %w", err)
	}
	defer apptRows.Close()

	for apptRows.Next() {
		var start time.Time
		var durationMin int
		if err := apptRows.Scan(&start, &durationMin); err != nil {
			return nil, nil, fmt.Errorf("store: scan accepted appointment: %w", err)
		}
		busy = append(busy, schedule.Block{
			Start: start,
			End:   start.Add(time.Duration(durationMin) * time.Minute),
		})
	}
	if err := apptRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: load accepted appointments: %w", err)
	}

	return work, busy, nil
}
