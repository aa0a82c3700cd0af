package rating

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

var (
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidCategory = errors.New("invalid category")
)

// Rank re-slices the stored summaries into a leaderboard.
//
// period selects the point field (all/year/month). A non-empty category
// other than "all" re-ranks by that category's breakdown value — users
// with zero points in it stay on the board, ranked last, it is not a
// filter. Ties break on userId ascending so the order is stable across
// calls. limit > 0 truncates the board.
//
// An empty rating store (no recompute has ever run) degrades to a
// zero-filled board built from the user directory.
func (e *Engine) Rank(ctx context.Context, period, category string, limit int) ([]model.RankedEntry, error) {
	switch period {
	case model.PeriodAllTime, model.PeriodYear, model.PeriodMonth:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if category != "" && category != model.CategoryAll && !model.IsKnownCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	summaries, err := e.summaries.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	if len(summaries) == 0 {
		summaries, err = e.zeroFill(ctx)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]model.RankedEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, model.RankedEntry{
			UserID:    s.UserID,
			Points:    selectPoints(s, period, category),
			Breakdown: s.Breakdown,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func selectPoints(s model.RatingSummary, period, category string) int {
	if category != "" && category != model.CategoryAll {
		return s.Breakdown[category]
	}
	switch period {
	case model.PeriodYear:
		return s.YearPoints
	case model.PeriodMonth:
		return s.MonthPoints
	default:
		return s.TotalPoints
	}
}

// zeroFill synthesizes an all-zero summary per known user so a fresh
// deployment still renders a complete board.
func (e *Engine) zeroFill(ctx context.Context) ([]model.RatingSummary, error) {
	ids, err := e.users.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	summaries := make([]model.RatingSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, model.RatingSummary{
			UserID:    id,
			Breakdown: emptyBreakdown(),
		})
	}
	return summaries, nil
}
