package repository

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubjectRepository interface {
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	ListBySemesterAndBranch(ctx context.Context, semesterID, branchID int) ([]model.Subject, error)
	Create(ctx context.Context, s *model.Subject) error
	Upsert(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id int) (bool, error)
}

type subjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) SubjectRepository {
	return &subjectRepository{pool: pool}
}

func (r *subjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, semester_id, branch_id, created_at, updated_at
		 FROM subjects WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.SemesterID, &s.BranchID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// ListBySemesterAndBranch matches on both keys: a subject whose branch does
// not match its semester's branch is never returned.
func (r *subjectRepository) ListBySemesterAndBranch(ctx context.Context, semesterID, branchID int) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, semester_id, branch_id, created_at, updated_at
		 FROM subjects WHERE semester_id = $1 AND branch_id = $2 ORDER BY id ASC`,
		semesterID, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.SemesterID, &s.BranchID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *subjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, description, semester_id, branch_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Description, s.SemesterID, s.BranchID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Upsert inserts a subject keyed by (semester_id, name) or returns the
// existing row untouched apart from description. Starter-subject seeding
// relies on this to stay idempotent.
func (r *subjectRepository) Upsert(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, description, semester_id, branch_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (semester_id, name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Description, s.SemesterID, s.BranchID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *subjectRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
