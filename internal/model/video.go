package model

import "time"

// Video is a lecture recording tied to one subject and one lecturer.
// Duration is in seconds.
type Video struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	YouTubeID   string     `json:"youtubeId"`
	Duration    int        `json:"duration"`
	SubjectID   int        `json:"subjectId"`
	LecturerID  int        `json:"lecturerId"`
	ViewCount   int        `json:"viewCount"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VideoWithLecturer is a video joined with its lecturer record for client
// consumption. Lecturer is null when the referenced row no longer exists.
type VideoWithLecturer struct {
	Video
	Lecturer *Lecturer `json:"lecturer"`
}

// CreateVideoRequest is the payload for creating a video.
// PublishedAt defaults to the current time when omitted.
type CreateVideoRequest struct {
	Title       string     `json:"title" binding:"required,min=2,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	YouTubeID   string     `json:"youtubeId" binding:"required,min=6,max=20"`
	Duration    int        `json:"duration" binding:"required,gt=0"`
	SubjectID   int        `json:"subjectId" binding:"required,min=1"`
	LecturerID  int        `json:"lecturerId" binding:"required,min=1"`
	PublishedAt *time.Time `json:"publishedAt" binding:"omitempty"`
}

// UpdateVideoRequest is the payload for partially updating a video.
// Nil fields are left untouched.
type UpdateVideoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	YouTubeID   *string    `json:"youtubeId" binding:"omitempty,min=6,max=20"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	SubjectID   *int       `json:"subjectId" binding:"omitempty,min=1"`
	LecturerID  *int       `json:"lecturerId" binding:"omitempty,min=1"`
	PublishedAt *time.Time `json:"publishedAt" binding:"omitempty"`
}
