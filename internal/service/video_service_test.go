package service

import (
	"context"
	"testing"
	"time"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVideoService() (*VideoService, *fakeVideoRepo, *fakeLecturerRepo, *fakeSubjectRepo) {
	videoRepo := &fakeVideoRepo{}
	lecturerRepo := &fakeLecturerRepo{}
	subjectRepo := &fakeSubjectRepo{}
	svc := NewVideoService(videoRepo, lecturerRepo, subjectRepo, NewCatalogEvents(nil, zerolog.Nop()), nil, zerolog.Nop())
	return svc, videoRepo, lecturerRepo, subjectRepo
}

func TestListBySubjectAttachesLecturers(t *testing.T) {
	svc, videoRepo, lecturerRepo, _ := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. John Smith", Title: "Professor", Institution: "MIT"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))

	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Introduction to Calculus", YouTubeID: "dQw4w9WgXcQ", Duration: 3600,
		SubjectID: 1, LecturerID: lecturer.ID,
	}))
	// References a lecturer that was never created.
	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Orphaned Lecture", YouTubeID: "XGgus_oEVq4", Duration: 2700,
		SubjectID: 1, LecturerID: 42,
	}))

	videos, err := svc.ListBySubject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	require.NotNil(t, videos[0].Lecturer)
	assert.Equal(t, "Dr. John Smith", videos[0].Lecturer.Name)

	// A dangling lecturer reference yields a null lecturer, not an error.
	assert.Nil(t, videos[1].Lecturer)
}

func TestListBySubjectOrdersNewestFirst(t *testing.T) {
	svc, videoRepo, lecturerRepo, _ := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. John Smith", Title: "Professor", Institution: "MIT"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))

	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Older Lecture", YouTubeID: "dQw4w9WgXcQ", Duration: 600,
		SubjectID: 1, LecturerID: lecturer.ID, PublishedAt: &older,
	}))
	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Newer Lecture", YouTubeID: "XGgus_oEVq4", Duration: 600,
		SubjectID: 1, LecturerID: lecturer.ID, PublishedAt: &newer,
	}))
	// Shares a publish timestamp with "Newer Lecture" but has a higher id.
	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Newer Lecture Part 2", YouTubeID: "9bZkp7q19f0", Duration: 600,
		SubjectID: 1, LecturerID: lecturer.ID, PublishedAt: &newer,
	}))
	require.NoError(t, videoRepo.Create(ctx, &model.Video{
		Title: "Undated Lecture", YouTubeID: "JGwWNGJdvx8", Duration: 600,
		SubjectID: 1, LecturerID: lecturer.ID,
	}))

	videos, err := svc.ListBySubject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, videos, 4)

	assert.Equal(t, "Newer Lecture", videos[0].Title)
	assert.Equal(t, "Newer Lecture Part 2", videos[1].Title)
	assert.Equal(t, "Older Lecture", videos[2].Title)
	assert.Equal(t, "Undated Lecture", videos[3].Title)
}

func TestGetByIDAttachesLecturer(t *testing.T) {
	svc, videoRepo, lecturerRepo, _ := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. Sarah Johnson", Title: "Associate Professor", Institution: "Stanford University"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))

	video := &model.Video{Title: "SQL Fundamentals", YouTubeID: "9bZkp7q19f0", Duration: 1800, SubjectID: 1, LecturerID: lecturer.ID}
	require.NoError(t, videoRepo.Create(ctx, video))

	got, err := svc.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Lecturer)
	assert.Equal(t, lecturer.ID, got.Lecturer.ID)

	missing, err := svc.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateDefaultsPublishedAt(t *testing.T) {
	svc, _, lecturerRepo, subjectRepo := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. Priya Sharma", Title: "Associate Professor", Institution: "IIT Delhi"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))
	subject := &model.Subject{Name: "Database Management Systems", Description: "Relational databases", SemesterID: 1, BranchID: 1}
	require.NoError(t, subjectRepo.Create(ctx, subject))

	before := time.Now().UTC()
	video, err := svc.Create(ctx, &model.CreateVideoRequest{
		Title: "SQL Fundamentals", YouTubeID: "9bZkp7q19f0", Duration: 1800,
		SubjectID: subject.ID, LecturerID: lecturer.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, video.PublishedAt)
	assert.False(t, video.PublishedAt.Before(before))

	explicit := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	video, err = svc.Create(ctx, &model.CreateVideoRequest{
		Title: "Indexing Deep Dive", YouTubeID: "JGwWNGJdvx8", Duration: 2400,
		SubjectID: subject.ID, LecturerID: lecturer.ID, PublishedAt: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, video.PublishedAt)
	assert.True(t, video.PublishedAt.Equal(explicit))
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	svc, _, lecturerRepo, subjectRepo := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. Michael Chen", Title: "Professor", Institution: "Stanford University"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))
	subject := &model.Subject{Name: "Physics", Description: "Mechanics", SemesterID: 1, BranchID: 1}
	require.NoError(t, subjectRepo.Create(ctx, subject))

	_, err := svc.Create(ctx, &model.CreateVideoRequest{
		Title: "Ghost Subject", YouTubeID: "dQw4w9WgXcQ", Duration: 600,
		SubjectID: 99, LecturerID: lecturer.ID,
	})
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	_, err = svc.Create(ctx, &model.CreateVideoRequest{
		Title: "Ghost Lecturer", YouTubeID: "dQw4w9WgXcQ", Duration: 600,
		SubjectID: subject.ID, LecturerID: 99,
	})
	assert.ErrorIs(t, err, ErrLecturerNotFound)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	svc, videoRepo, lecturerRepo, subjectRepo := newTestVideoService()
	ctx := context.Background()

	lecturer := &model.Lecturer{Name: "Dr. John Smith", Title: "Professor", Institution: "MIT"}
	require.NoError(t, lecturerRepo.Create(ctx, lecturer))
	subject := &model.Subject{Name: "Engineering Mathematics I", Description: "Calculus", SemesterID: 1, BranchID: 1}
	require.NoError(t, subjectRepo.Create(ctx, subject))

	video := &model.Video{
		Title: "Introduction to Calculus", YouTubeID: "dQw4w9WgXcQ", Duration: 3600,
		SubjectID: subject.ID, LecturerID: lecturer.ID,
	}
	require.NoError(t, videoRepo.Create(ctx, video))

	newTitle := "Limits and Continuity"
	updated, err := svc.Update(ctx, video.ID, &model.UpdateVideoRequest{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, 3600, updated.Duration)

	badLecturer := 77
	_, err = svc.Update(ctx, video.ID, &model.UpdateVideoRequest{LecturerID: &badLecturer})
	assert.ErrorIs(t, err, ErrLecturerNotFound)

	updated, err = svc.Update(ctx, 999, &model.UpdateVideoRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteVideo(t *testing.T) {
	svc, videoRepo, _, _ := newTestVideoService()
	ctx := context.Background()

	video := &model.Video{Title: "To Remove", YouTubeID: "dQw4w9WgXcQ", Duration: 60, SubjectID: 1, LecturerID: 1}
	require.NoError(t, videoRepo.Create(ctx, video))

	deleted, err := svc.Delete(ctx, video.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, video.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
