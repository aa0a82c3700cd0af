package route

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/rating"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/repo"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/service"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/middleware"
)

func SetupRoutes(app *fiber.App, pgDB *gorm.DB, mongoDB *mongo.Database) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	userRepo := repo.NewUserRepo(pgDB)
	achievementRepo := repo.NewAchievementRepo(mongoDB)
	ratingRepo := repo.NewRatingRepo(mongoDB)
	if err := ratingRepo.EnsureIndexes(context.Background()); err != nil {
		log.Println("Warning: could not ensure rating indexes:", err)
	}

	engine := rating.NewEngine(achievementRepo, ratingRepo, userRepo)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	achievementService := service.NewAchievementService(achievementRepo)
	ratingService := service.NewRatingService(engine, ratingRepo, userRepo)

	auth := v1.Group("/auth")
	auth.Post("/login", authService.Login)
	auth.Post("/refresh", authService.Refresh)

	// Rankings are public.
	v1.Get("/rating", ratingService.Leaderboard)

	protected := v1.Group("", middleware.AuthRequired())

	protected.Post("/auth/logout", authService.Logout)
	protected.Get("/auth/profile", authService.Profile)

	protected.Get("/rating/me", ratingService.MySummary)
	protected.Post("/rating/recompute", middleware.RoleRequired(model.RoleAdmin), ratingService.Recompute)

	protected.Get("/users", middleware.RoleRequired(model.RoleAdmin), userService.List)
	protected.Post("/users", middleware.RoleRequired(model.RoleAdmin), userService.Create)

	protected.Get("/achievements", achievementService.List)
	protected.Get("/achievements/:id", achievementService.Get)
	protected.Post("/achievements", middleware.RoleRequired(model.RoleAdmin), achievementService.Create)
	protected.Put("/achievements/:id", middleware.RoleRequired(model.RoleAdmin), achievementService.Update)
	protected.Delete("/achievements/:id", middleware.RoleRequired(model.RoleAdmin), achievementService.Delete)
}
