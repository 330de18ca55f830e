package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("menu item not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, item *MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	meta, err := json.Marshal(map[string]any{
		"sizes":    item.Sizes,
		"flavours": item.Flavours,
		"images":   item.Images,
	})
	if err != nil {
		return fmt.Errorf("marshal item meta: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO menu_items (id, slug, name, source_url, detail_url, base_price, meta, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (slug) DO UPDATE SET
			name = $3,
			source_url = $4,
			detail_url = $5,
			base_price = $6,
			meta = $7,
			updated_at = now()`,
		item.ID, item.Slug, item.Name, item.SourceURL, item.DetailURL, item.BasePrice, meta,
	)
	return err
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*MenuItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, slug, name, source_url, detail_url, base_price, meta
		FROM menu_items WHERE slug = $1`,
		slug,
	)

	item, err := scanItem(row)
	if err != nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, slug, name, source_url, detail_url, base_price, meta
		FROM menu_items ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) SaveImages(ctx context.Context, slug string, images []string) error {
	item, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	item.Images = images
	return r.Upsert(ctx, item)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*MenuItem, error) {
	item := &MenuItem{}
	var meta []byte

	err := row.Scan(
		&item.ID, &item.Slug, &item.Name,
		&item.SourceURL, &item.DetailURL, &item.BasePrice, &meta,
	)
	if err != nil {
		return nil, err
	}

	if len(meta) > 0 {
		var m struct {
			Sizes    []string `json:"sizes"`
			Flavours []string `json:"flavours"`
			Images   []string `json:"images"`
		}
		if err := json.Unmarshal(meta, &m); err == nil {
			item.Sizes = m.Sizes
			item.Flavours = m.Flavours
			item.Images = m.Images
		}
	}
	return item, nil
}
