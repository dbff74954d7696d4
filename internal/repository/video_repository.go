package repository

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VideoRepository interface {
	GetByID(ctx context.Context, id int) (*model.Video, error)
	ListBySubject(ctx context.Context, subjectID int) ([]model.Video, error)
	Create(ctx context.Context, v *model.Video) error
	Update(ctx context.Context, id int, req *model.UpdateVideoRequest) (*model.Video, error)
	Delete(ctx context.Context, id int) (bool, error)
	IncrementViews(ctx context.Context, id, delta int) error
}

type videoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

const videoColumns = `id, title, description, youtube_id, duration, subject_id,
	lecturer_id, view_count, published_at, created_at, updated_at`

func scanVideo(row pgx.Row) (*model.Video, error) {
	v := &model.Video{}
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.YouTubeID, &v.Duration,
		&v.SubjectID, &v.LecturerID, &v.ViewCount, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
}

// ListBySubject returns a subject's videos newest-first. The explicit order
// keeps results deterministic for videos sharing a publish timestamp.
func (r *videoRepository) ListBySubject(ctx context.Context, subjectID int) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+` FROM videos
		 WHERE subject_id = $1
		 ORDER BY published_at DESC NULLS LAST, id ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.YouTubeID, &v.Duration,
			&v.SubjectID, &v.LecturerID, &v.ViewCount, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO videos (title, description, youtube_id, duration, subject_id, lecturer_id, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, view_count, created_at, updated_at`,
		v.Title, v.Description, v.YouTubeID, v.Duration, v.SubjectID, v.LecturerID, v.PublishedAt,
	).Scan(&v.ID, &v.ViewCount, &v.CreatedAt, &v.UpdatedAt)
}

// Update applies a partial update: nil request fields keep the stored value.
// Returns (nil, nil) when no row matches.
func (r *videoRepository) Update(ctx context.Context, id int, req *model.UpdateVideoRequest) (*model.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx,
		`UPDATE videos SET
			title        = COALESCE($2, title),
			description  = COALESCE($3, description),
			youtube_id   = COALESCE($4, youtube_id),
			duration     = COALESCE($5, duration),
			subject_id   = COALESCE($6, subject_id),
			lecturer_id  = COALESCE($7, lecturer_id),
			published_at = COALESCE($8, published_at),
			updated_at   = NOW()
		 WHERE id = $1
		 RETURNING `+videoColumns,
		id, req.Title, req.Description, req.YouTubeID, req.Duration,
		req.SubjectID, req.LecturerID, req.PublishedAt))
}

func (r *videoRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id, delta int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE videos SET view_count = view_count + $1, updated_at = NOW() WHERE id = $2`,
		delta, id)
	return err
}
