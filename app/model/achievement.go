package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recognized achievement categories. Anything else still counts toward
// totalPoints but is excluded from the per-category breakdown.
const (
	CategorySport      = "sport"
	CategoryStudy      = "study"
	CategoryCreativity = "creativity"
	CategoryVolunteer  = "volunteer"
)

var Categories = []string{CategorySport, CategoryStudy, CategoryCreativity, CategoryVolunteer}

func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Achievement is one document in the Mongo "achievements" collection.
// Date is kept loosely typed: old documents store it as a string, newer
// ones as a native Mongo date, and some have none at all. The rating
// engine resolves it at fold time instead of failing at decode time.
type Achievement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"user_id"`
	Category    string             `bson:"category" json:"category"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Points      int                `bson:"points" json:"points"`
	Date        interface{}        `bson:"date,omitempty" json:"date,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

type CreateAchievementRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=sport study creativity volunteer"`
	Description string `json:"description"`
	Points      int    `json:"points" validate:"required"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateAchievementRequest struct {
	Title       *string `json:"title,omitempty"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=sport study creativity volunteer"`
	Description *string `json:"description,omitempty"`
	Points      *int    `json:"points,omitempty"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type AchievementResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Points      int        `json:"points"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
