package model

import "time"

// StarterSemesterNumber is the one semester that receives the starter
// subject template on first provisioning. Every other semester is
// provisioned empty and filled in by professors.
const StarterSemesterNumber = 3

// Semester is one numbered term (1..8) within a branch. There is exactly
// one row per (branch, number) pair, enforced by a unique constraint.
type Semester struct {
	ID        int       `json:"id"`
	Number    int       `json:"number"`
	BranchID  int       `json:"branchId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
