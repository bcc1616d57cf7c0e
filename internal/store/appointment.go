package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"calendar-service/internal/model"
)

// CreateAppointment inserts a pending appointment if no live (pending or
// accepted) appointment holds the same (provider, start) slot. The check and
// the insert are one statement, and a partial unique index backstops it, so
// concurrent creates cannot both win.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO appointments (client_id, provider_id, starts_at, duration_min, details, status)
		 SELECT $1, $2, $3, $4, $5, 'pending'
		 WHERE NOT EXISTS (
		     SELECT 1 FROM appointments
		     WHERE provider_id = $2 AND starts_at = $3 AND status IN ('pending','accepted')
		 )
		 RETURNING id, status, created_at, updated_at`,
		a.ClientID, a.ProviderID, a.StartsAt, a.DurationMin, a.Details,
	).Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSlotTaken
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique index caught a race
			return ErrSlotTaken
		}
		return fmt.Errorf("store: create appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: commit create appointment: %w", err)
	}
	return nil
}

func (s *Store) ListAppointmentsForUser(ctx context.Context, userID int64) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.client_id, a.provider_id, a.starts_at, a.duration_min,
		        COALESCE(a.details, ''), a.status, a.job_id, a.rating_id,
		        a.created_at, a.updated_at,
		        cli.given_names || ' ' || cli.surname,
		        pro.given_names || ' ' || pro.surname
		 FROM appointments a
		 JOIN users cli ON cli.id = a.client_id
		 JOIN users pro ON pro.id = a.provider_id
		 WHERE a.client_id = $1 OR a.provider_id = $1
		 ORDER BY a.starts_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list appointments: %w", err)
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		var d model.AppointmentDetail
		if err := rows.Scan(
			&d.ID, &d.ClientID, &d.ProviderID, &d.StartsAt, &d.DurationMin,
			&d.Details, &d.Status, &d.JobID, &d.RatingID,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ClientName, &d.ProviderName,
		); err != nil {
			return nil, fmt.Errorf("store: scan appointment: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list appointments: %w", err)
	}
	return out, nil
}

// AcceptAppointment moves a pending appointment owned by providerID to
// accepted and seeds the conversation between provider and client, all in one
// transaction. A missing row, a non-pending row, and a row owned by another
// provider all collapse to ErrNotFound.
func (s *Store) AcceptAppointment(ctx context.Context, id, providerID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var clientID int64
	err = tx.QueryRow(ctx,
		`UPDATE appointments
		 SET status = 'accepted', updated_at = NOW()
		 WHERE id = $1 AND provider_id = $2 AND status = 'pending'
		 RETURNING client_id`, id, providerID,
	).Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("store: accept appointment: %w", err)
	}

	if err := ensureConversation(ctx, tx, providerID, clientID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: commit accept appointment: %w", err)
	}
	return nil
}

// RejectAppointment marks a pending appointment rejected. The row is kept;
// rejected is terminal and frees the slot for the conflict check.
func (s *Store) RejectAppointment(ctx context.Context, id, providerID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET status = 'rejected', updated_at = NOW()
		 WHERE id = $1 AND provider_id = $2 AND status = 'pending'`, id, providerID,
	)
	if err != nil {
		return fmt.Errorf("store: reject appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
