package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/config"
	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/middlewares"
)

type PlanSaver interface {
	Save(ctx context.Context, u *user.User) error
}

type PlansHandler struct {
	users PlanSaver
}

func NewPlansHandler(users PlanSaver) *PlansHandler {
	return &PlansHandler{users: users}
}

// Create appends one entry to the caller's plan list and saves the whole
// document. Any save failure maps to 400, mirroring the write-through
// behaviour the frontend expects.
func (h *PlansHandler) Create(ctx *gin.Context) {
	var in user.PlanInput

	if !BindJSON(ctx, &in) {
		return
	}

	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context")
		return
	}

	u.StudyPlans = append(u.StudyPlans, user.PlanFromInput(in))

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		RespondError(ctx, http.StatusBadRequest, "save_failed", "Could not save study plans", nil)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"studyPlans": u.StudyPlans,
		"count":      len(u.StudyPlans),
	})
}

// Replace swaps the whole plan list; an empty array clears it.
func (h *PlansHandler) Replace(ctx *gin.Context) {
	var inputs []user.PlanInput

	if !BindJSON(ctx, &inputs) {
		return
	}

	if inputs == nil {
		RespondBadRequest(ctx, "Request body must be an array of study plans", nil)
		return
	}

	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context")
		return
	}

	plans := make([]user.StudyPlan, 0, len(inputs))

	for _, in := range inputs {
		plans = append(plans, user.PlanFromInput(in))
	}

	u.StudyPlans = plans

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		RespondError(ctx, http.StatusBadRequest, "save_failed", "Could not save study plans", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Study plans updated",
		"studyPlans": u.StudyPlans,
		"count":      len(u.StudyPlans),
	})
}
