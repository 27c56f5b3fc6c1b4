package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/littlelemon/internal/domain"
)

type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type PGMenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) MenuRepository {
	return &PGMenuRepository{db: db}
}

func (r *PGMenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, price_cents, inventory, created_at, updated_at FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		var m domain.MenuItem
		var cents int64
		if err := rows.Scan(&m.ID, &m.Title, &cents, &m.Inventory, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Price = domain.Price(cents)
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *PGMenuRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.db.QueryRow(ctx, `SELECT id, title, price_cents, inventory, created_at, updated_at FROM menu_items WHERE id=$1`, id)
	var m domain.MenuItem
	var cents int64
	if err := row.Scan(&m.ID, &m.Title, &cents, &m.Inventory, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	m.Price = domain.Price(cents)
	return &m, nil
}

func (r *PGMenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	return r.db.QueryRow(ctx, `INSERT INTO menu_items (title, price_cents, inventory)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, item.Title, int64(item.Price), item.Inventory).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PGMenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	row := r.db.QueryRow(ctx, `UPDATE menu_items SET title=$1, price_cents=$2, inventory=$3, updated_at=now()
		WHERE id=$4
		RETURNING created_at, updated_at`, item.Title, int64(item.Price), item.Inventory, item.ID)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGMenuRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ MenuRepository = (*PGMenuRepository)(nil)
