package model

import "time"

// UserType distinguishes account roles. Only professors may mutate the catalog.
type UserType string

const (
	UserTypeProfessor UserType = "professor"
	UserTypeStudent   UserType = "student"
)

// User is an account. PasswordHash is a bcrypt hash and never serialized.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Type         UserType  `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the payload for creating a new account.
// Type defaults to "student" when omitted.
type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=32,alphanum"`
	Password string   `json:"password" binding:"required,min=6,max=128"`
	Type     UserType `json:"type" binding:"omitempty,oneof=student professor"`
}

// LoginRequest is the payload for professor authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
