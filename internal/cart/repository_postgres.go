package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores each user's cart as a JSON document plus a
// running total. It is also the default Bridge: Commit appends the
// entry in the collaborator's wire shape unchanged.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Commit implements Bridge.
func (r *PostgresRepository) Commit(ctx context.Context, userID string, entry *Entry) error {
	return r.Append(ctx, userID, entry)
}

func (r *PostgresRepository) Append(ctx context.Context, userID string, entry *Entry) error {
	entries, total, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}

	entries = append(entries, *entry)
	total += entry.TotalCost

	doc, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart entries: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO carts (user_id, entries, total, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			entries = $2,
			total = $3,
			updated_at = now()`,
		userID, doc, total,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) ([]Entry, float64, error) {
	var doc []byte
	var total float64

	err := r.db.QueryRow(ctx,
		`SELECT entries, total FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&doc, &total)
	if emptyCart(err) {
		return []Entry{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load cart: %w", err)
	}

	var entries []Entry
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &entries); err != nil {
			return nil, 0, fmt.Errorf("unmarshal cart entries: %w", err)
		}
	}
	return entries, total, nil
}

// emptyCart reports whether the read failed only because the user has
// no cart row yet. Any other error, connection failures included, must
// propagate so callers never rewrite a cart they could not read.
func emptyCart(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *PostgresRepository) Remove(ctx context.Context, userID string, entryID string) error {
	entries, _, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}

	kept := entries[:0]
	var total float64
	for _, e := range entries {
		if e.ID == entryID {
			continue
		}
		kept = append(kept, e)
		total += e.TotalCost
	}

	doc, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("marshal cart entries: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		UPDATE carts SET entries = $2, total = $3, updated_at = now()
		WHERE user_id = $1`,
		userID, doc, total,
	)
	return err
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
