package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

type RatingRepository interface {
	UpsertAll(ctx context.Context, summaries []model.RatingSummary) error
	Upsert(ctx context.Context, summary model.RatingSummary) error
	GetAll(ctx context.Context) ([]model.RatingSummary, error)
	GetByUserID(ctx context.Context, userID string) (*model.RatingSummary, error)
}

type RatingRepo struct {
	coll *mongo.Collection
}

func NewRatingRepo(db *mongo.Database) *RatingRepo {
	return &RatingRepo{coll: db.Collection("ratings")}
}

// UpsertAll commits one recompute run's summaries in a single transaction.
// A crash or write fault mid-run therefore never leaves the collection
// with a mix of fresh and stale documents.
func (r *RatingRepo) UpsertAll(ctx context.Context, summaries []model.RatingSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(summaries))
	for _, s := range summaries {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"userId": s.UserID}).
			SetReplacement(s).
			SetUpsert(true))
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.coll.BulkWrite(sc, writes, options.BulkWrite().SetOrdered(true))
	})
	return err
}

func (r *RatingRepo) Upsert(ctx context.Context, summary model.RatingSummary) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"userId": summary.UserID},
		summary,
		options.Replace().SetUpsert(true))
	return err
}

func (r *RatingRepo) GetAll(ctx context.Context) ([]model.RatingSummary, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []model.RatingSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *RatingRepo) GetByUserID(ctx context.Context, userID string) (*model.RatingSummary, error) {
	var summary model.RatingSummary
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// EnsureIndexes creates the unique userId index the upserts key on.
func (r *RatingRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
