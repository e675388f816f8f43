package user

import (
	"time"

	"github.com/google/uuid"
)

func NewFromRegisterRequest(req RegisterRequest, passwordHash string) User {
	now := time.Now()

	return User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		StudyPlans:   []StudyPlan{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func PlanFromInput(in PlanInput) StudyPlan {
	return StudyPlan{
		Subject:   in.Subject,
		Hours:     in.Hours,
		Milestone: in.Milestone,
		Completed: in.Completed,
	}
}

func (u User) Summary() Summary {
	return Summary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
