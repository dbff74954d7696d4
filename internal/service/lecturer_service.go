package service

import (
	"context"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/rs/zerolog"
)

// LecturerService handles lecturer listing and management.
type LecturerService struct {
	lecturerRepo repository.LecturerRepository
	events       *CatalogEvents
	log          zerolog.Logger
}

// NewLecturerService creates a new LecturerService.
func NewLecturerService(lecturerRepo repository.LecturerRepository, events *CatalogEvents, log zerolog.Logger) *LecturerService {
	return &LecturerService{
		lecturerRepo: lecturerRepo,
		events:       events,
		log:          log.With().Str("component", "lecturer_service").Logger(),
	}
}

func (s *LecturerService) GetAll(ctx context.Context) ([]model.Lecturer, error) {
	return s.lecturerRepo.GetAll(ctx)
}

func (s *LecturerService) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	return s.lecturerRepo.GetByID(ctx, id)
}

func (s *LecturerService) Create(ctx context.Context, req *model.CreateLecturerRequest) (*model.Lecturer, error) {
	lecturer := &model.Lecturer{
		Name:        req.Name,
		Title:       req.Title,
		Institution: req.Institution,
		ImageURL:    req.ImageURL,
	}
	if err := s.lecturerRepo.Create(ctx, lecturer); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, CatalogEvent{Kind: EventLecturerCreated, EntityID: lecturer.ID, Title: lecturer.Name})
	return lecturer, nil
}

// SetImage stores the portrait URL for a lecturer. Returns false when the
// lecturer does not exist.
func (s *LecturerService) SetImage(ctx context.Context, id int, imageURL string) (bool, error) {
	return s.lecturerRepo.UpdateImageURL(ctx, id, imageURL)
}
