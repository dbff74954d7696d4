package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Video reference errors, surfaced as validation failures.
var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrLecturerNotFound = errors.New("lecturer not found")
)

// VideoService handles video CRUD and lecturer enrichment.
type VideoService struct {
	videoRepo    repository.VideoRepository
	lecturerRepo repository.LecturerRepository
	subjectRepo  repository.SubjectRepository
	events       *CatalogEvents
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewVideoService creates a new VideoService.
func NewVideoService(
	videoRepo repository.VideoRepository,
	lecturerRepo repository.LecturerRepository,
	subjectRepo repository.SubjectRepository,
	events *CatalogEvents,
	rdb *redis.Client,
	log zerolog.Logger,
) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		lecturerRepo: lecturerRepo,
		subjectRepo:  subjectRepo,
		events:       events,
		rdb:          rdb,
		log:          log.With().Str("component", "video_service").Logger(),
	}
}

// ListBySubject returns a subject's videos, each joined with its lecturer.
// Lecturers are fetched in a single batched query. A video whose lecturer
// row no longer exists carries a null lecturer; siblings are unaffected.
func (s *VideoService) ListBySubject(ctx context.Context, subjectID int) ([]model.VideoWithLecturer, error) {
	videos, err := s.videoRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	lecturers, err := s.lecturerRepo.GetByIDs(ctx, lecturerIDs(videos))
	if err != nil {
		return nil, err
	}

	enriched := make([]model.VideoWithLecturer, 0, len(videos))
	for _, v := range videos {
		enriched = append(enriched, attachLecturer(v, lecturers))
	}
	return enriched, nil
}

// GetByID returns one video joined with its lecturer, or nil when absent.
func (s *VideoService) GetByID(ctx context.Context, id int) (*model.VideoWithLecturer, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, nil
	}

	lecturers, err := s.lecturerRepo.GetByIDs(ctx, []int{video.LecturerID})
	if err != nil {
		return nil, err
	}

	enriched := attachLecturer(*video, lecturers)
	return &enriched, nil
}

// Create persists a new video. PublishedAt defaults to the current time
// when the request leaves it unset.
func (s *VideoService) Create(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error) {
	subject, err := s.subjectRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}

	lecturer, err := s.lecturerRepo.GetByID(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}
	if lecturer == nil {
		return nil, ErrLecturerNotFound
	}

	publishedAt := req.PublishedAt
	if publishedAt == nil {
		now := time.Now().UTC()
		publishedAt = &now
	}

	video := &model.Video{
		Title:       req.Title,
		Description: req.Description,
		YouTubeID:   req.YouTubeID,
		Duration:    req.Duration,
		SubjectID:   req.SubjectID,
		LecturerID:  req.LecturerID,
		PublishedAt: publishedAt,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, CatalogEvent{
		Kind:      EventVideoCreated,
		EntityID:  video.ID,
		SubjectID: video.SubjectID,
		Title:     video.Title,
	})
	return video, nil
}

// Update applies a partial update. Returns nil when the video does not exist.
func (s *VideoService) Update(ctx context.Context, id int, req *model.UpdateVideoRequest) (*model.Video, error) {
	if req.LecturerID != nil {
		lecturer, err := s.lecturerRepo.GetByID(ctx, *req.LecturerID)
		if err != nil {
			return nil, err
		}
		if lecturer == nil {
			return nil, ErrLecturerNotFound
		}
	}
	if req.SubjectID != nil {
		subject, err := s.subjectRepo.GetByID(ctx, *req.SubjectID)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, ErrSubjectNotFound
		}
	}

	video, err := s.videoRepo.Update(ctx, id, req)
	if err != nil || video == nil {
		return video, err
	}

	s.events.Publish(ctx, CatalogEvent{
		Kind:      EventVideoUpdated,
		EntityID:  video.ID,
		SubjectID: video.SubjectID,
		Title:     video.Title,
	})
	return video, nil
}

// Delete removes a video permanently. Returns false when no row matched.
func (s *VideoService) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.videoRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.events.Publish(ctx, CatalogEvent{Kind: EventVideoDeleted, EntityID: id})
	}
	return deleted, nil
}

type viewEvent struct {
	VideoID  int       `json:"video_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// QueueView enqueues a view event for asynchronous counting. The view-count
// worker drains the queue into PostgreSQL.
func (s *VideoService) QueueView(ctx context.Context, videoID int) error {
	payload, err := json.Marshal(viewEvent{VideoID: videoID, ViewedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.QueueKey.VideoViewQueue, payload).Err()
}

func lecturerIDs(videos []model.Video) []int {
	seen := make(map[int]struct{}, len(videos))
	ids := make([]int, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.LecturerID]; ok {
			continue
		}
		seen[v.LecturerID] = struct{}{}
		ids = append(ids, v.LecturerID)
	}
	return ids
}

func attachLecturer(v model.Video, lecturers map[int]model.Lecturer) model.VideoWithLecturer {
	enriched := model.VideoWithLecturer{Video: v}
	if l, ok := lecturers[v.LecturerID]; ok {
		lecturer := l
		enriched.Lecturer = &lecturer
	}
	return enriched
}
