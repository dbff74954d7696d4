package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/engivid/engivid-backend/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches []model.Branch
}

func (f *fakeBranchRepo) GetAll(ctx context.Context) ([]model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Branch, len(f.branches))
	copy(out, f.branches)
	return out, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.branches {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBranchRepo) GetByCode(ctx context.Context, code string) (*model.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.branches {
		if b.Code == code {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBranchRepo) Upsert(ctx context.Context, b *model.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.branches {
		if existing.Code == b.Code {
			b.ID = existing.ID
			f.branches[i] = *b
			return nil
		}
	}
	b.ID = len(f.branches) + 1
	f.branches = append(f.branches, *b)
	return nil
}

type fakeSemesterRepo struct {
	mu        sync.Mutex
	nextID    int
	semesters []model.Semester
}

func (f *fakeSemesterRepo) ListByBranch(ctx context.Context, branchID int) ([]model.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Semester
	for _, s := range f.semesters {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSemesterRepo) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.semesters {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSemesterRepo) GetByBranchAndNumber(ctx context.Context, branchID, number int) (*model.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(branchID, number), nil
}

func (f *fakeSemesterRepo) Upsert(ctx context.Context, branchID, number int) (*model.Semester, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing := f.findLocked(branchID, number); existing != nil {
		return existing, nil
	}
	f.nextID++
	s := model.Semester{
		ID:        f.nextID,
		Number:    number,
		BranchID:  branchID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.semesters = append(f.semesters, s)
	out := s
	return &out, nil
}

func (f *fakeSemesterRepo) findLocked(branchID, number int) *model.Semester {
	for _, s := range f.semesters {
		if s.BranchID == branchID && s.Number == number {
			out := s
			return &out
		}
	}
	return nil
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	nextID   int
	subjects []model.Subject
}

func (f *fakeSubjectRepo) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subjects {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSubjectRepo) ListBySemesterAndBranch(ctx context.Context, semesterID, branchID int) ([]model.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Subject
	for _, s := range f.subjects {
		if s.SemesterID == semesterID && s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubjectRepo) Create(ctx context.Context, s *model.Subject) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	f.subjects = append(f.subjects, *s)
	return nil
}

func (f *fakeSubjectRepo) Upsert(ctx context.Context, s *model.Subject) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.subjects {
		if existing.SemesterID == s.SemesterID && existing.Name == s.Name {
			f.subjects[i].Description = s.Description
			*s = f.subjects[i]
			return nil
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	f.subjects = append(f.subjects, *s)
	return nil
}

func (f *fakeSubjectRepo) Delete(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subjects {
		if s.ID == id {
			f.subjects = append(f.subjects[:i], f.subjects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeLecturerRepo struct {
	mu        sync.Mutex
	nextID    int
	lecturers []model.Lecturer
}

func (f *fakeLecturerRepo) GetAll(ctx context.Context) ([]model.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Lecturer, len(f.lecturers))
	copy(out, f.lecturers)
	return out, nil
}

func (f *fakeLecturerRepo) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lecturers {
		if l.ID == id {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeLecturerRepo) GetByIDs(ctx context.Context, ids []int) (map[int]model.Lecturer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int]model.Lecturer, len(ids))
	for _, id := range ids {
		for _, l := range f.lecturers {
			if l.ID == id {
				result[id] = l
			}
		}
	}
	return result, nil
}

func (f *fakeLecturerRepo) Create(ctx context.Context, l *model.Lecturer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l.ID = f.nextID
	f.lecturers = append(f.lecturers, *l)
	return nil
}

func (f *fakeLecturerRepo) UpdateImageURL(ctx context.Context, id int, imageURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lecturers {
		if l.ID == id {
			f.lecturers[i].ImageURL = &imageURL
			return true, nil
		}
	}
	return false, nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	nextID int
	videos []model.Video
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id int) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
		if v.ID == id {
			out := v
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) ListBySubject(ctx context.Context, subjectID int) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Video
	for _, v := range f.videos {
		if v.SubjectID == subjectID {
			out = append(out, v)
		}
	}
	// Newest-first, nil timestamps last, id ascending as tiebreaker —
	// the same ordering the real repository's query produces.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			return a.ID < b.ID
		case a.PublishedAt == nil:
			return false
		case b.PublishedAt == nil:
			return true
		case a.PublishedAt.Equal(*b.PublishedAt):
			return a.ID < b.ID
		default:
			return a.PublishedAt.After(*b.PublishedAt)
		}
	})
	return out, nil
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	v.ID = f.nextID
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	f.videos = append(f.videos, *v)
	return nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, id int, req *model.UpdateVideoRequest) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID != id {
			continue
		}
		v := &f.videos[i]
		if req.Title != nil {
			v.Title = *req.Title
		}
		if req.Description != nil {
			v.Description = req.Description
		}
		if req.YouTubeID != nil {
			v.YouTubeID = *req.YouTubeID
		}
		if req.Duration != nil {
			v.Duration = *req.Duration
		}
		if req.SubjectID != nil {
			v.SubjectID = *req.SubjectID
		}
		if req.LecturerID != nil {
			v.LecturerID = *req.LecturerID
		}
		if req.PublishedAt != nil {
			v.PublishedAt = req.PublishedAt
		}
		v.UpdatedAt = time.Now()
		out := *v
		return &out, nil
	}
	return nil, nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, v := range f.videos {
		if v.ID == id {
			f.videos = append(f.videos[:i], f.videos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVideoRepo) IncrementViews(ctx context.Context, id, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.videos {
		if f.videos[i].ID == id {
			f.videos[i].ViewCount += delta
		}
	}
	return nil
}
