package model

import "time"

// Subject is a course offered within a specific branch and semester.
// BranchID always matches the parent semester's branch; the resolver and
// the repository queries both enforce the pairing.
type Subject struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SemesterID  int       `json:"semesterId"`
	BranchID    int       `json:"branchId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"required,min=2,max=500"`
	SemesterID  int    `json:"semesterId" binding:"required,min=1"`
	BranchID    int    `json:"branchId" binding:"required,min=1"`
}
