package user

import (
	"errors"
	"time"
)

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // never expose hash in JSON
	Avatar       string      `json:"avatar,omitempty"`
	StudyPlans   []StudyPlan `json:"studyPlans"`
	TargetDate   *time.Time  `json:"targetDate"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// StudyPlan entries have no identity of their own; the list is replaced or
// appended to through the owning user document.
type StudyPlan struct {
	Subject   string  `json:"subject"`
	Hours     float64 `json:"hours"`
	Milestone string  `json:"milestone,omitempty"`
	Completed bool    `json:"completed"`
}

// Summary is the shape returned next to a session token.
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// with pointers if optional, it will be nil
type UpdateSettingsRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=120"`
	Avatar *string `json:"avatar" binding:"omitempty,max=2048"`
}

type UpdateTargetDateRequest struct {
	TargetDate time.Time `json:"targetDate" binding:"required"`
}

type PlanInput struct {
	Subject   string  `json:"subject" binding:"required,min=1,max=200"`
	Hours     float64 `json:"hours" binding:"gte=0"`
	Milestone string  `json:"milestone" binding:"omitempty,max=500"`
	Completed bool    `json:"completed"`
}
