package repository

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LecturerRepository interface {
	GetAll(ctx context.Context) ([]model.Lecturer, error)
	GetByID(ctx context.Context, id int) (*model.Lecturer, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]model.Lecturer, error)
	Create(ctx context.Context, l *model.Lecturer) error
	UpdateImageURL(ctx context.Context, id int, imageURL string) (bool, error)
}

type lecturerRepository struct {
	pool *pgxpool.Pool
}

func NewLecturerRepository(pool *pgxpool.Pool) LecturerRepository {
	return &lecturerRepository{pool: pool}
}

const lecturerColumns = `id, name, title, institution, image_url, created_at, updated_at`

func (r *lecturerRepository) GetAll(ctx context.Context) ([]model.Lecturer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lecturers []model.Lecturer
	for rows.Next() {
		var l model.Lecturer
		if err := rows.Scan(&l.ID, &l.Name, &l.Title, &l.Institution, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lecturers = append(lecturers, l)
	}
	return lecturers, rows.Err()
}

func (r *lecturerRepository) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	l := &model.Lecturer{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Title, &l.Institution, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// GetByIDs fetches lecturers for a batch of IDs in one query. IDs without a
// matching row are simply absent from the result map.
func (r *lecturerRepository) GetByIDs(ctx context.Context, ids []int) (map[int]model.Lecturer, error) {
	result := make(map[int]model.Lecturer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.Lecturer
		if err := rows.Scan(&l.ID, &l.Name, &l.Title, &l.Institution, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		result[l.ID] = l
	}
	return result, rows.Err()
}

func (r *lecturerRepository) Create(ctx context.Context, l *model.Lecturer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO lecturers (name, title, institution, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		l.Name, l.Title, l.Institution, l.ImageURL,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *lecturerRepository) UpdateImageURL(ctx context.Context, id int, imageURL string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lecturers SET image_url = $1, updated_at = NOW() WHERE id = $2`,
		imageURL, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
