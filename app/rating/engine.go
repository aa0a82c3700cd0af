package rating

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

// AchievementSource is the read side of the achievement log. The engine
// never writes achievements.
type AchievementSource interface {
	ListAll(ctx context.Context) ([]model.Achievement, error)
}

// SummaryStore holds one RatingSummary per user. UpsertAll must be
// all-or-nothing: a failed run may not leave a mix of fresh and stale
// summaries behind.
type SummaryStore interface {
	UpsertAll(ctx context.Context, summaries []model.RatingSummary) error
	GetAll(ctx context.Context) ([]model.RatingSummary, error)
	GetByUserID(ctx context.Context, userID string) (*model.RatingSummary, error)
}

// UserDirectory lists known user ids, in a stable order. Only used to
// zero-fill a ranking when no recompute has run yet.
type UserDirectory interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

type Engine struct {
	achievements AchievementSource
	summaries    SummaryStore
	users        UserDirectory

	now func() time.Time
}

func NewEngine(achievements AchievementSource, summaries SummaryStore, users UserDirectory) *Engine {
	return &Engine{
		achievements: achievements,
		summaries:    summaries,
		users:        users,
		now:          time.Now,
	}
}

// Recompute replaces every user's RatingSummary from the full achievement
// log. A store failure on either side aborts the run with the previous
// summaries untouched. Callers are expected to serialize runs; the engine
// itself takes no lock.
func (e *Engine) Recompute(ctx context.Context) (*model.RecomputeReport, error) {
	now := e.now()

	achievements, err := e.achievements.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	byUser, stats := Aggregate(achievements, now)

	// Deterministic write order; the upsert set itself is keyed by userId.
	summaries := make([]model.RatingSummary, 0, len(byUser))
	for _, s := range byUser {
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].UserID < summaries[j].UserID })

	if err := e.summaries.UpsertAll(ctx, summaries); err != nil {
		return nil, fmt.Errorf("persist summaries: %w", err)
	}

	if stats.SkippedNoUser > 0 || stats.UnresolvableDates > 0 || stats.UnknownCategories > 0 {
		log.Printf("rating recompute: skipped %d records without userId, %d unresolvable dates, %d unknown categories",
			stats.SkippedNoUser, stats.UnresolvableDates, stats.UnknownCategories)
	}

	return &model.RecomputeReport{
		UsersUpdated:      len(summaries),
		SkippedNoUser:     stats.SkippedNoUser,
		UnresolvableDates: stats.UnresolvableDates,
		UnknownCategories: stats.UnknownCategories,
		RanAt:             now,
	}, nil
}
