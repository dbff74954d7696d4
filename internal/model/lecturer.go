package model

import "time"

// Lecturer is a person credited as presenter of a video. Lecturers are
// independent of the branch/semester hierarchy.
type Lecturer struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Institution string    `json:"institution"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateLecturerRequest is the payload for creating a lecturer.
type CreateLecturerRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Title       string  `json:"title" binding:"required,min=2,max=120"`
	Institution string  `json:"institution" binding:"required,min=2,max=160"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=500"`
}
