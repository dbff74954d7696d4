package service

import (
	"context"
	"sync"
	"testing"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService() (*CatalogService, *fakeBranchRepo, *fakeSemesterRepo, *fakeSubjectRepo) {
	branchRepo := &fakeBranchRepo{branches: []model.Branch{
		{ID: 1, Name: "Computer Science Engineering", Code: "CSE", IsActive: true},
		{ID: 2, Name: "Mechanical Engineering", Code: "ME", ComingSoon: true},
	}}
	semesterRepo := &fakeSemesterRepo{}
	subjectRepo := &fakeSubjectRepo{}
	svc := NewCatalogService(branchRepo, semesterRepo, subjectRepo, NewCatalogEvents(nil, zerolog.Nop()), zerolog.Nop())
	return svc, branchRepo, semesterRepo, subjectRepo
}

func TestResolveBranchByCodeAndID(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	byCode, err := svc.ResolveBranch(ctx, "CSE")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, 1, byCode.ID)

	byID, err := svc.ResolveBranch(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ME", byID.Code)

	missing, err := svc.ResolveBranch(ctx, "EEE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestResolveSubjectsExistingSemester(t *testing.T) {
	svc, _, semesterRepo, subjectRepo := newTestCatalogService()
	ctx := context.Background()

	semester, err := semesterRepo.Upsert(ctx, 1, 5)
	require.NoError(t, err)
	require.NoError(t, subjectRepo.Create(ctx, &model.Subject{
		Name: "Operating Systems", Description: "Processes, scheduling, memory",
		SemesterID: semester.ID, BranchID: 1,
	}))

	subjects, err := svc.ResolveSubjects(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Operating Systems", subjects[0].Name)
	assert.Len(t, semesterRepo.semesters, 1)
}

func TestResolveSubjectsProvisionsEmptySemester(t *testing.T) {
	svc, _, semesterRepo, _ := newTestCatalogService()
	ctx := context.Background()

	subjects, err := svc.ResolveSubjects(ctx, 1, 4)
	require.NoError(t, err)
	assert.NotNil(t, subjects)
	assert.Empty(t, subjects)

	// The semester row now exists for the next access.
	semester, err := semesterRepo.GetByBranchAndNumber(ctx, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, semester)
	assert.Equal(t, 4, semester.Number)
}

func TestResolveSubjectsSeedsStarterSemester(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()
	ctx := context.Background()

	subjects, err := svc.ResolveSubjects(ctx, 1, model.StarterSemesterNumber)
	require.NoError(t, err)
	require.Len(t, subjects, 3)

	names := []string{subjects[0].Name, subjects[1].Name, subjects[2].Name}
	assert.Contains(t, names, "Data Structures and Algorithms")
	assert.Contains(t, names, "Object-Oriented Programming")
	assert.Contains(t, names, "Database Management Systems")
	for _, s := range subjects {
		assert.Equal(t, 1, s.BranchID)
	}
}

func TestResolveSubjectsStarterIsIdempotent(t *testing.T) {
	svc, _, semesterRepo, subjectRepo := newTestCatalogService()
	ctx := context.Background()

	first, err := svc.ResolveSubjects(ctx, 1, model.StarterSemesterNumber)
	require.NoError(t, err)
	second, err := svc.ResolveSubjects(ctx, 1, model.StarterSemesterNumber)
	require.NoError(t, err)

	require.Len(t, first, 3)
	require.Len(t, second, 3)
	assert.Len(t, semesterRepo.semesters, 1)
	assert.Len(t, subjectRepo.subjects, 3)
}

func TestResolveSubjectsConcurrentFirstAccess(t *testing.T) {
	svc, _, semesterRepo, subjectRepo := newTestCatalogService()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ResolveSubjects(ctx, 1, model.StarterSemesterNumber); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent resolve failed: %v", err)
	}

	assert.Len(t, semesterRepo.semesters, 1)
	assert.Len(t, subjectRepo.subjects, 3)
}

func TestResolveSubjectsStarterNumberDoesNotLeakAcrossBranches(t *testing.T) {
	svc, _, _, subjectRepo := newTestCatalogService()
	ctx := context.Background()

	cse, err := svc.ResolveSubjects(ctx, 1, model.StarterSemesterNumber)
	require.NoError(t, err)
	me, err := svc.ResolveSubjects(ctx, 2, model.StarterSemesterNumber)
	require.NoError(t, err)

	require.Len(t, cse, 3)
	require.Len(t, me, 3)
	assert.Len(t, subjectRepo.subjects, 6)
	for _, s := range me {
		assert.Equal(t, 2, s.BranchID)
	}
}

func TestCreateSubjectValidatesSemester(t *testing.T) {
	svc, _, semesterRepo, _ := newTestCatalogService()
	ctx := context.Background()

	_, err := svc.CreateSubject(ctx, &model.CreateSubjectRequest{
		Name: "Compilers", Description: "Lexing, parsing, codegen",
		SemesterID: 99, BranchID: 1,
	})
	assert.ErrorIs(t, err, ErrSemesterNotFound)

	semester, err := semesterRepo.Upsert(ctx, 1, 6)
	require.NoError(t, err)

	_, err = svc.CreateSubject(ctx, &model.CreateSubjectRequest{
		Name: "Compilers", Description: "Lexing, parsing, codegen",
		SemesterID: semester.ID, BranchID: 2,
	})
	assert.ErrorIs(t, err, ErrBranchMismatch)

	subject, err := svc.CreateSubject(ctx, &model.CreateSubjectRequest{
		Name: "Compilers", Description: "Lexing, parsing, codegen",
		SemesterID: semester.ID, BranchID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, subject.ID)
}

func TestDeleteSubject(t *testing.T) {
	svc, _, semesterRepo, subjectRepo := newTestCatalogService()
	ctx := context.Background()

	semester, err := semesterRepo.Upsert(ctx, 1, 2)
	require.NoError(t, err)
	subject := &model.Subject{Name: "Chemistry", Description: "Basics", SemesterID: semester.ID, BranchID: 1}
	require.NoError(t, subjectRepo.Create(ctx, subject))

	deleted, err := svc.DeleteSubject(ctx, subject.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteSubject(ctx, subject.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
