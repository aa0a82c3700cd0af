package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/rating"
)

type stubAchievementSource struct {
	achievements []model.Achievement
}

func (s *stubAchievementSource) ListAll(ctx context.Context) ([]model.Achievement, error) {
	return s.achievements, nil
}

type stubRatingRepo struct {
	summaries []model.RatingSummary
}

func (s *stubRatingRepo) UpsertAll(ctx context.Context, summaries []model.RatingSummary) error {
	s.summaries = summaries
	return nil
}

func (s *stubRatingRepo) Upsert(ctx context.Context, summary model.RatingSummary) error {
	return nil
}

func (s *stubRatingRepo) GetAll(ctx context.Context) ([]model.RatingSummary, error) {
	return s.summaries, nil
}

func (s *stubRatingRepo) GetByUserID(ctx context.Context, userID string) (*model.RatingSummary, error) {
	for i := range s.summaries {
		if s.summaries[i].UserID == userID {
			return &s.summaries[i], nil
		}
	}
	return nil, errors.New("not found")
}

type stubUserRepo struct {
	ids   []string
	names map[string]string
}

func (s *stubUserRepo) Create(user *model.User) error               { return nil }
func (s *stubUserRepo) FindByUsername(string) (*model.User, error)  { return nil, errors.New("not found") }
func (s *stubUserRepo) FindByUserID(uuid.UUID) (*model.User, error) { return nil, errors.New("not found") }
func (s *stubUserRepo) Update(user *model.User) error               { return nil }
func (s *stubUserRepo) ClearRefreshToken(uuid.UUID) error           { return nil }

func (s *stubUserRepo) FindAll(page, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.ids, nil
}

func (s *stubUserRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return s.names, nil
}

func newTestApp(summaries []model.RatingSummary, names map[string]string) *fiber.App {
	ratingRepo := &stubRatingRepo{summaries: summaries}
	userRepo := &stubUserRepo{names: names}
	engine := rating.NewEngine(&stubAchievementSource{}, ratingRepo, userRepo)
	svc := NewRatingService(engine, ratingRepo, userRepo)

	app := fiber.New()
	app.Get("/api/v1/rating", svc.Leaderboard)
	return app
}

func TestLeaderboardHandler(t *testing.T) {
	summaries := []model.RatingSummary{
		{UserID: "a", TotalPoints: 5, Breakdown: map[string]int{"sport": 5}},
		{UserID: "b", TotalPoints: 12, Breakdown: map[string]int{"study": 12}},
	}
	app := newTestApp(summaries, map[string]string{"a": "Alice A.", "b": "Bob B."})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rating?period=all&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body model.SuccessResponse[[]model.RankedEntry]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)

	assert.Equal(t, "b", body.Data[0].UserID)
	assert.Equal(t, "Bob B.", body.Data[0].FullName)
	assert.Equal(t, 12, body.Data[0].Points)
	assert.Equal(t, "a", body.Data[1].UserID)
}

func TestLeaderboardHandlerRejectsBadArguments(t *testing.T) {
	app := newTestApp(nil, nil)

	tests := []struct {
		name string
		url  string
	}{
		{name: "unknown period", url: "/api/v1/rating?period=weekly"},
		{name: "unknown category", url: "/api/v1/rating?category=chess"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRecomputeHandler(t *testing.T) {
	ratingRepo := &stubRatingRepo{}
	userRepo := &stubUserRepo{}
	source := &stubAchievementSource{achievements: []model.Achievement{
		{UserID: "a", Category: model.CategorySport, Points: 3, Date: time.Now()},
	}}
	engine := rating.NewEngine(source, ratingRepo, userRepo)
	svc := NewRatingService(engine, ratingRepo, userRepo)

	app := fiber.New()
	app.Post("/api/v1/rating/recompute", svc.Recompute)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rating/recompute", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body model.SuccessResponse[model.RecomputeReport]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.UsersUpdated)
	require.Len(t, ratingRepo.summaries, 1)
	assert.Equal(t, "a", ratingRepo.summaries[0].UserID)
}
