package repository

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchRepository interface {
	GetAll(ctx context.Context) ([]model.Branch, error)
	GetByID(ctx context.Context, id int) (*model.Branch, error)
	GetByCode(ctx context.Context, code string) (*model.Branch, error)
	Upsert(ctx context.Context, b *model.Branch) error
}

type branchRepository struct {
	pool *pgxpool.Pool
}

func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

const branchColumns = `id, name, code, is_active, coming_soon, created_at, updated_at`

func scanBranch(row pgx.Row) (*model.Branch, error) {
	b := &model.Branch{}
	err := row.Scan(&b.ID, &b.Name, &b.Code, &b.IsActive, &b.ComingSoon, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *branchRepository) GetAll(ctx context.Context) ([]model.Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+branchColumns+` FROM branches ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		var b model.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.IsActive, &b.ComingSoon, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (r *branchRepository) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	return scanBranch(r.pool.QueryRow(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
}

func (r *branchRepository) GetByCode(ctx context.Context, code string) (*model.Branch, error) {
	return scanBranch(r.pool.QueryRow(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE code = $1`, code))
}

// Upsert inserts a branch or refreshes an existing one by code.
// Used by the seed command so reseeding stays idempotent.
func (r *branchRepository) Upsert(ctx context.Context, b *model.Branch) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO branches (name, code, is_active, coming_soon)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name, is_active = EXCLUDED.is_active,
		     coming_soon = EXCLUDED.coming_soon, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		b.Name, b.Code, b.IsActive, b.ComingSoon,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}
