package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

type AchievementRepository interface {
	Create(ctx context.Context, req model.CreateAchievementRequest) (*model.AchievementResponse, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.AchievementResponse, error)
	FindPage(ctx context.Context, userID string, page, limit int) ([]model.AchievementResponse, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, req model.UpdateAchievementRequest) (*model.AchievementResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context) ([]model.Achievement, error)
}

type AchievementRepo struct {
	coll *mongo.Collection
}

func NewAchievementRepo(db *mongo.Database) *AchievementRepo {
	return &AchievementRepo{coll: db.Collection("achievements")}
}

func (r *AchievementRepo) Create(ctx context.Context, req model.CreateAchievementRequest) (*model.AchievementResponse, error) {
	now := time.Now()

	doc := model.Achievement{
		UserID:      req.UserID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
		}
		doc.Date = date
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	return mapAchievement(doc), nil
}

func (r *AchievementRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.AchievementResponse, error) {
	var doc model.Achievement
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return mapAchievement(doc), nil
}

// FindPage lists achievements newest first. An empty userID returns every
// user's records (admin view).
func (r *AchievementRepo) FindPage(ctx context.Context, userID string, page, limit int) ([]model.AchievementResponse, int64, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	results := []model.AchievementResponse{}
	for cursor.Next(ctx) {
		var doc model.Achievement
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		results = append(results, *mapAchievement(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *AchievementRepo) Update(ctx context.Context, id primitive.ObjectID, req model.UpdateAchievementRequest) (*model.AchievementResponse, error) {
	set := bson.M{"updatedAt": time.Now()}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Points != nil {
		set["points"] = *req.Points
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
		}
		set["date"] = date
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *AchievementRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListAll exhausts the whole collection for a recompute run. Any cursor
// fault aborts: the rating engine must see the complete log or nothing.
func (r *AchievementRepo) ListAll(ctx context.Context) ([]model.Achievement, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var achievements []model.Achievement
	if err := cursor.All(ctx, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func mapAchievement(doc model.Achievement) *model.AchievementResponse {
	resp := &model.AchievementResponse{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		Category:    doc.Category,
		Title:       doc.Title,
		Description: doc.Description,
		Points:      doc.Points,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if date, ok := model.ResolveDate(doc.Date); ok {
		resp.Date = &date
	}
	return resp
}
