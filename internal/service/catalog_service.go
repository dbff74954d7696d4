package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Catalog hierarchy errors.
var (
	ErrSemesterNotFound = errors.New("semester not found")
	ErrBranchMismatch   = errors.New("subject branch does not match semester branch")
)

// starterSubjects is the template set installed when the starter semester
// is provisioned for the first time.
var starterSubjects = []struct {
	Name        string
	Description string
}{
	{"Data Structures and Algorithms", "Advanced implementation of data structures, algorithm design and analysis"},
	{"Object-Oriented Programming", "Principles of OOP, inheritance, polymorphism, and design patterns"},
	{"Database Management Systems", "Relational databases, SQL, normalization, and transaction management"},
}

// CatalogService resolves the branch → semester → subject hierarchy,
// provisioning missing semesters lazily on first access.
type CatalogService struct {
	branchRepo   repository.BranchRepository
	semesterRepo repository.SemesterRepository
	subjectRepo  repository.SubjectRepository
	events       *CatalogEvents
	log          zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	branchRepo repository.BranchRepository,
	semesterRepo repository.SemesterRepository,
	subjectRepo repository.SubjectRepository,
	events *CatalogEvents,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		branchRepo:   branchRepo,
		semesterRepo: semesterRepo,
		subjectRepo:  subjectRepo,
		events:       events,
		log:          log.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *CatalogService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	return s.branchRepo.GetAll(ctx)
}

// ResolveBranch looks up a branch by its routing reference: the branch code
// (e.g. "CSE") or a numeric id.
func (s *CatalogService) ResolveBranch(ctx context.Context, ref string) (*model.Branch, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return s.branchRepo.GetByID(ctx, id)
	}
	return s.branchRepo.GetByCode(ctx, ref)
}

func (s *CatalogService) ListSemesters(ctx context.Context, branchID int) ([]model.Semester, error) {
	return s.semesterRepo.ListByBranch(ctx, branchID)
}

// ResolveSubjects resolves (branchID, semesterNumber) to the semester's
// subject list, lazily provisioning the semester row when it does not exist
// yet. Provisioning is an upsert against the (branch_id, number) unique
// constraint, so concurrent first accesses converge on one row. Only the
// starter semester self-populates with the subject template; every other
// semester starts empty until a professor adds subjects.
func (s *CatalogService) ResolveSubjects(ctx context.Context, branchID, semesterNumber int) ([]model.Subject, error) {
	semester, err := s.semesterRepo.GetByBranchAndNumber(ctx, branchID, semesterNumber)
	if err != nil {
		return nil, err
	}

	if semester != nil {
		return s.subjectRepo.ListBySemesterAndBranch(ctx, semester.ID, branchID)
	}

	semester, err = s.semesterRepo.Upsert(ctx, branchID, semesterNumber)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("branch_id", branchID).
		Int("number", semesterNumber).
		Int("semester_id", semester.ID).
		Msg("Semester provisioned on first access")

	if semesterNumber == model.StarterSemesterNumber {
		return s.SeedStarterSubjects(ctx, semester)
	}

	return []model.Subject{}, nil
}

// SeedStarterSubjects installs the starter subject template into a semester.
// Idempotent: each subject is upserted on (semester_id, name), so repeated
// or concurrent calls return the same three rows. Also invoked by the seed
// command, keeping the template out of the read path's query logic.
func (s *CatalogService) SeedStarterSubjects(ctx context.Context, semester *model.Semester) ([]model.Subject, error) {
	subjects := make([]model.Subject, 0, len(starterSubjects))
	for _, tpl := range starterSubjects {
		sub := model.Subject{
			Name:        tpl.Name,
			Description: tpl.Description,
			SemesterID:  semester.ID,
			BranchID:    semester.BranchID,
		}
		if err := s.subjectRepo.Upsert(ctx, &sub); err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}

	s.log.Info().
		Int("semester_id", semester.ID).
		Int("count", len(subjects)).
		Msg("Starter subjects seeded")

	return subjects, nil
}

func (s *CatalogService) GetSubjectByID(ctx context.Context, id int) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// CreateSubject creates a subject after verifying the target semester
// exists and belongs to the requested branch.
func (s *CatalogService) CreateSubject(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	semester, err := s.semesterRepo.GetByID(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, ErrSemesterNotFound
	}
	if semester.BranchID != req.BranchID {
		return nil, ErrBranchMismatch
	}

	subject := &model.Subject{
		Name:        req.Name,
		Description: req.Description,
		SemesterID:  req.SemesterID,
		BranchID:    req.BranchID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, CatalogEvent{Kind: EventSubjectCreated, EntityID: subject.ID, Title: subject.Name})
	return subject, nil
}

func (s *CatalogService) DeleteSubject(ctx context.Context, id int) (bool, error) {
	deleted, err := s.subjectRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.events.Publish(ctx, CatalogEvent{Kind: EventSubjectDeleted, EntityID: id})
	}
	return deleted, nil
}
