package performancehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/performance"
	"ems/internal/transport/http/middleware"
)

type fakeReviews struct {
	cycles    []performance.Cycle
	submitted []performance.Scores
}

func (f *fakeReviews) StartCycle(_ context.Context, _ auth.Session, cycle performance.Cycle) (performance.CycleResult, error) {
	if cycle.PeriodEnd.Before(cycle.PeriodStart) {
		return performance.CycleResult{}, performance.ErrInvalidPeriod
	}
	f.cycles = append(f.cycles, cycle)
	return performance.CycleResult{}, nil
}

func (f *fakeReviews) Submit(_ context.Context, session auth.Session, id string, scores performance.Scores, _ string) (performance.Review, error) {
	if err := scores.Validate(); err != nil {
		return performance.Review{}, err
	}
	if id != "rv-1" {
		return performance.Review{}, performance.ErrNotFound
	}
	f.submitted = append(f.submitted, scores)
	rating := performance.OverallRating(scores)
	return performance.Review{ID: id, Status: performance.StatusCompleted, OverallRating: &rating, ReviewerID: session.EmployeeID}, nil
}

func (f *fakeReviews) Acknowledge(_ context.Context, session auth.Session, id string) (performance.Review, error) {
	if session.EmployeeID != "emp-1" {
		return performance.Review{}, performance.ErrForbidden
	}
	return performance.Review{ID: id, Status: performance.StatusAcknowledged}, nil
}

func (f *fakeReviews) ForEmployee(context.Context, auth.Session, string) ([]performance.Review, error) {
	return []performance.Review{}, nil
}

func (f *fakeReviews) Latest(context.Context, auth.Session, string) (performance.Review, error) {
	return performance.Review{}, performance.ErrNotFound
}

func (f *fakeReviews) All(context.Context, auth.Session, string) ([]performance.Review, error) {
	return []performance.Review{}, nil
}

func (f *fakeReviews) Summary(context.Context, auth.Session) (performance.Summary, error) {
	return performance.Summary{Total: 1}, nil
}

func newRouter(svc Reviews, session auth.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithSession(req.Context(), session)))
		})
	})
	NewHandler(svc, nil).RegisterRoutes(r)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

var (
	hr       = auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}
	manager  = auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}
	reviewee = auth.Session{EmployeeID: "emp-1", Role: auth.RoleEmployee}
)

func TestStartCycle(t *testing.T) {
	svc := &fakeReviews{}

	rec := serve(newRouter(svc, hr), http.MethodPost, "/reviews/cycles", `{"employeeIds":["emp-1"],"periodStart":"2024-01-01","periodEnd":"2024-06-30"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, svc.cycles, 1)
	assert.Equal(t, 30, svc.cycles[0].PeriodEnd.Day())

	rec = serve(newRouter(svc, hr), http.MethodPost, "/reviews/cycles", `{"employeeIds":[],"periodStart":"2024-01-01","periodEnd":"2024-06-30"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newRouter(svc, hr), http.MethodPost, "/reviews/cycles", `{"employeeIds":["emp-1"],"periodStart":"2024-06-30","periodEnd":"2024-01-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(newRouter(svc, manager), http.MethodPost, "/reviews/cycles", `{"employeeIds":["emp-1"],"periodStart":"2024-01-01","periodEnd":"2024-06-30"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitReview(t *testing.T) {
	svc := &fakeReviews{}
	body := `{"scores":{"goalsAchieved":80,"communication":4,"technicalSkills":5,"teamwork":3,"leadership":4,"punctuality":5},"comments":"solid"}`

	rec := serve(newRouter(svc, manager), http.MethodPost, "/reviews/rv-1/submit", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"overallRating":"4.2"`)

	rec = serve(newRouter(svc, manager), http.MethodPost, "/reviews/rv-1/submit", `{"scores":{"goalsAchieved":120,"communication":4,"technicalSkills":5,"teamwork":3,"leadership":4,"punctuality":5},"comments":"solid"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(newRouter(svc, reviewee), http.MethodPost, "/reviews/rv-1/submit", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, svc.submitted, 1)
}

func TestSubmitReviewRequiresComments(t *testing.T) {
	svc := &fakeReviews{}
	scores := `"scores":{"goalsAchieved":80,"communication":4,"technicalSkills":5,"teamwork":3,"leadership":4,"punctuality":5}`

	for _, body := range []string{"{" + scores + "}", "{" + scores + `,"comments":""}`} {
		rec := serve(newRouter(svc, manager), http.MethodPost, "/reviews/rv-1/submit", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "comments")
	}
	assert.Empty(t, svc.submitted)
}

func TestAcknowledgeAndLatest(t *testing.T) {
	svc := &fakeReviews{}

	assert.Equal(t, http.StatusOK, serve(newRouter(svc, reviewee), http.MethodPost, "/reviews/rv-1/acknowledge", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(svc, manager), http.MethodPost, "/reviews/rv-1/acknowledge", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(newRouter(svc, reviewee), http.MethodGet, "/reviews/latest", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(svc, reviewee), http.MethodGet, "/reviews/summary", "").Code)
}
