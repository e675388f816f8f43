package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/handlers"
)

type plansResponse struct {
	Message    string           `json:"message"`
	StudyPlans []user.StudyPlan `json:"studyPlans"`
	Count      int              `json:"count"`
}

func TestCreatePlanHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(f *fakeUserStore)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:           "appends the plan",
			body:           `{"subject":"Calculus","hours":3,"milestone":"Integrals"}`,
			wantStatusCode: http.StatusCreated,
			wantCount:      3,
		},
		{
			name:           "rejects a missing subject",
			body:           `{"hours":2}`,
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
		{
			name:           "rejects negative hours",
			body:           `{"subject":"Calculus","hours":-1}`,
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
		{
			name: "maps save failures to 400",
			body: `{"subject":"Calculus","hours":3}`,
			repoSetUp: func(f *fakeUserStore) {
				f.saveFn = func(ctx context.Context, u *user.User) error {
					return errors.New("connection reset")
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			u := seedProfile()

			repo := &fakeUserStore{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewPlansHandler(repo)
			r := setupAuthedRouter(http.MethodPost, "/api/plans", &u, h.Create)

			req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCount < 0 {
				return
			}

			var resp plansResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
			}
			if resp.Count != tt.wantCount || len(resp.StudyPlans) != tt.wantCount {
				t.Fatalf("got count %d (%d plans), want %d", resp.Count, len(resp.StudyPlans), tt.wantCount)
			}
		})
	}
}

func TestCreatePlanAppendsWithoutReordering(t *testing.T) {
	u := seedProfile()

	var saved *user.User
	repo := &fakeUserStore{
		saveFn: func(ctx context.Context, su *user.User) error {
			saved = su
			return nil
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupAuthedRouter(http.MethodPost, "/api/plans", &u, h.Create)

	body := `{"subject":"Calculus","hours":3,"milestone":"Integrals","completed":false}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	if saved == nil || len(saved.StudyPlans) != 3 {
		t.Fatalf("expected 3 persisted plans, got %+v", saved)
	}
	if saved.StudyPlans[0].Subject != "Algebra" || saved.StudyPlans[1].Subject != "Graph theory" {
		t.Fatalf("existing plans were reordered: %+v", saved.StudyPlans)
	}
	last := saved.StudyPlans[2]
	if last.Subject != "Calculus" || last.Hours != 3 || last.Milestone != "Integrals" || last.Completed {
		t.Fatalf("appended plan mismatch: %+v", last)
	}
}

func TestCreatePlanSaveFailureUsesDistinctCode(t *testing.T) {
	u := seedProfile()

	repo := &fakeUserStore{
		saveFn: func(ctx context.Context, su *user.User) error {
			return errors.New("connection reset")
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupAuthedRouter(http.MethodPost, "/api/plans", &u, h.Create)

	body := `{"subject":"Calculus","hours":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}
	if resp.Error.Code != "save_failed" {
		t.Fatalf("expected save_failed, got %q", resp.Error.Code)
	}
}

func TestReplacePlansHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(f *fakeUserStore)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:           "replaces the whole list",
			body:           `[{"subject":"Calculus","hours":3},{"subject":"Statistics","hours":1,"completed":true}]`,
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:           "accepts an empty array",
			body:           `[]`,
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:           "rejects a null body",
			body:           `null`,
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
		{
			name:           "rejects an object body",
			body:           `{"subject":"Calculus","hours":3}`,
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
		{
			name:           "rejects an invalid element",
			body:           `[{"subject":"Calculus","hours":3},{"hours":2}]`,
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
		{
			name: "maps save failures to 400",
			body: `[{"subject":"Calculus","hours":3}]`,
			repoSetUp: func(f *fakeUserStore) {
				f.saveFn = func(ctx context.Context, u *user.User) error {
					return errors.New("connection reset")
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantCount:      -1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			u := seedProfile()

			repo := &fakeUserStore{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewPlansHandler(repo)
			r := setupAuthedRouter(http.MethodPut, "/api/plans", &u, h.Replace)

			req := httptest.NewRequest(http.MethodPut, "/api/plans", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCount < 0 {
				return
			}

			var resp plansResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
			}
			if resp.Count != tt.wantCount {
				t.Fatalf("got count %d, want %d", resp.Count, tt.wantCount)
			}
		})
	}
}

func TestReplacePlansEmptyArrayClearsTheList(t *testing.T) {
	u := seedProfile()

	var saved *user.User
	repo := &fakeUserStore{
		saveFn: func(ctx context.Context, su *user.User) error {
			saved = su
			return nil
		},
	}

	h := handlers.NewPlansHandler(repo)
	r := setupAuthedRouter(http.MethodPut, "/api/plans", &u, h.Replace)

	req := httptest.NewRequest(http.MethodPut, "/api/plans", bytes.NewBufferString(`[]`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	if saved == nil || saved.StudyPlans == nil || len(saved.StudyPlans) != 0 {
		t.Fatalf("expected a persisted empty list, got %+v", saved)
	}
	if !strings.Contains(w.Body.String(), `"studyPlans":[]`) {
		t.Fatalf("empty list must serialize as [], body=%s", w.Body.String())
	}
}
