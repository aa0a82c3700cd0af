package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/rating"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/repo"
)

type RatingService struct {
	engine     *rating.Engine
	ratingRepo repo.RatingRepository
	userRepo   repo.UserRepository
}

func NewRatingService(engine *rating.Engine, ratingRepo repo.RatingRepository, userRepo repo.UserRepository) *RatingService {
	return &RatingService{
		engine:     engine,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
	}
}

// GET /api/v1/rating
func (s *RatingService) Leaderboard(c *fiber.Ctx) error {
	period := c.Query("period", model.PeriodAllTime)
	category := c.Query("category", "")
	limit := c.QueryInt("limit", 50)

	entries, err := s.engine.Rank(c.Context(), period, category, limit)
	if err != nil {
		if errors.Is(err, rating.ErrInvalidPeriod) || errors.Is(err, rating.ErrInvalidCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	names, err := s.userRepo.NamesByIDs(c.Context(), ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: "Failed to resolve user names"})
	}
	for i := range entries {
		entries[i].FullName = names[entries[i].UserID]
	}

	return c.JSON(model.SuccessResponse[[]model.RankedEntry]{Success: true, Data: entries})
}

// GET /api/v1/rating/me
func (s *RatingService) MySummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uuid.UUID)

	summary, err := s.ratingRepo.GetByUserID(c.Context(), userID.String())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No recompute has covered this user yet; report zeros rather than 404.
			summary = &model.RatingSummary{UserID: userID.String(), Breakdown: map[string]int{}}
			for _, cat := range model.Categories {
				summary.Breakdown[cat] = 0
			}
			return c.JSON(model.SuccessResponse[*model.RatingSummary]{Success: true, Data: summary})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.SuccessResponse[*model.RatingSummary]{Success: true, Data: summary})
}

// POST /api/v1/rating/recompute
func (s *RatingService) Recompute(c *fiber.Ctx) error {
	report, err := s.engine.Recompute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Success: false,
			Message: "Recompute failed, previous ratings left intact",
			Error:   err.Error(),
		})
	}

	return c.JSON(model.SuccessResponse[*model.RecomputeReport]{Success: true, Message: "Rating recomputed", Data: report})
}
