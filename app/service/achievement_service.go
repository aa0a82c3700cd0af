package service

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/repo"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/helper"
)

type AchievementService struct {
	repo repo.AchievementRepository
}

func NewAchievementService(repo repo.AchievementRepository) *AchievementService {
	return &AchievementService{repo: repo}
}

// GET /api/v1/achievements
func (s *AchievementService) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	// Students see their own records, admins see everyone's.
	userID := ""
	if c.Locals("role").(string) != model.RoleAdmin {
		userID = c.Locals("user_id").(uuid.UUID).String()
	}

	items, total, err := s.repo.FindPage(c.Context(), userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(model.SuccessResponse[model.PaginationData[model.AchievementResponse]]{
		Success: true,
		Data: model.PaginationData[model.AchievementResponse]{
			Items: items,
			Meta: model.MetaInfo{
				Page:  page,
				Limit: limit,
				Total: total,
				Pages: totalPages,
			},
		},
	})
}

// GET /api/v1/achievements/:id
func (s *AchievementService) Get(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: "Invalid achievement id"})
	}

	data, err := s.repo.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{Success: false, Message: "Achievement not found"})
	}

	if c.Locals("role").(string) != model.RoleAdmin && data.UserID != c.Locals("user_id").(uuid.UUID).String() {
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{Success: false, Message: "Not your achievement"})
	}

	return c.JSON(model.SuccessResponse[*model.AchievementResponse]{Success: true, Data: data})
}

// POST /api/v1/achievements
func (s *AchievementService) Create(c *fiber.Ctx) error {
	var req model.CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: "Invalid input"})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	res, err := s.repo.Create(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[*model.AchievementResponse]{Success: true, Data: res})
}

// PUT /api/v1/achievements/:id
func (s *AchievementService) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: "Invalid achievement id"})
	}

	var req model.UpdateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: "Invalid input"})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Success: false,
			Message: helper.FormatValidationErrors(err),
		})
	}

	res, err := s.repo.Update(c.Context(), id, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Success: false, Message: err.Error()})
	}

	return c.JSON(model.SuccessResponse[*model.AchievementResponse]{Success: true, Data: res})
}

// DELETE /api/v1/achievements/:id
func (s *AchievementService) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Success: false, Message: "Invalid achievement id"})
	}

	if err := s.repo.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{Success: false, Message: "Achievement not found"})
	}

	return c.JSON(model.SuccessMessageResponse{Success: true, Message: "Deleted"})
}
