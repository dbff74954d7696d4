package repository

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SemesterRepository interface {
	ListByBranch(ctx context.Context, branchID int) ([]model.Semester, error)
	GetByID(ctx context.Context, id int) (*model.Semester, error)
	GetByBranchAndNumber(ctx context.Context, branchID, number int) (*model.Semester, error)
	Upsert(ctx context.Context, branchID, number int) (*model.Semester, error)
}

type semesterRepository struct {
	pool *pgxpool.Pool
}

func NewSemesterRepository(pool *pgxpool.Pool) SemesterRepository {
	return &semesterRepository{pool: pool}
}

func (r *semesterRepository) ListByBranch(ctx context.Context, branchID int) ([]model.Semester, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, number, branch_id, created_at, updated_at
		 FROM semesters WHERE branch_id = $1 ORDER BY number ASC`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []model.Semester
	for rows.Next() {
		var s model.Semester
		if err := rows.Scan(&s.ID, &s.Number, &s.BranchID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

func (r *semesterRepository) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, number, branch_id, created_at, updated_at
		 FROM semesters WHERE id = $1`, id,
	).Scan(&s.ID, &s.Number, &s.BranchID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *semesterRepository) GetByBranchAndNumber(ctx context.Context, branchID, number int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, number, branch_id, created_at, updated_at
		 FROM semesters WHERE branch_id = $1 AND number = $2`, branchID, number,
	).Scan(&s.ID, &s.Number, &s.BranchID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Upsert inserts the (branch, number) semester row or returns the existing
// one. The DO UPDATE arm is a no-op write so RETURNING yields the row in
// both cases; concurrent first reads converge on a single row.
func (r *semesterRepository) Upsert(ctx context.Context, branchID, number int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO semesters (branch_id, number)
		 VALUES ($1, $2)
		 ON CONFLICT (branch_id, number) DO UPDATE SET number = EXCLUDED.number
		 RETURNING id, number, branch_id, created_at, updated_at`,
		branchID, number,
	).Scan(&s.ID, &s.Number, &s.BranchID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
