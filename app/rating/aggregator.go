package rating

import (
	"time"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

// Stats counts the records a fold had to work around. None of them abort
// a run; they are surfaced so an operator can spot rotten data.
type Stats struct {
	SkippedNoUser     int
	UnresolvableDates int
	UnknownCategories int
}

// Aggregate folds the full achievement set into one RatingSummary per user.
//
// Rules, in order:
//   - a record without a userId is skipped entirely (counted);
//   - points always go into totalPoints, whatever the category or date;
//   - only the four known categories land in the breakdown;
//   - a record whose date cannot be resolved keeps its total/breakdown
//     contribution but is excluded from the year and month windows;
//   - year/month windows are the calendar year and month containing now.
//
// The fold is pure: same achievements and same now produce identical
// summaries, so a rerun is a no-op overwrite.
func Aggregate(achievements []model.Achievement, now time.Time) (map[string]model.RatingSummary, Stats) {
	summaries := make(map[string]model.RatingSummary)
	var stats Stats

	for _, a := range achievements {
		if a.UserID == "" {
			stats.SkippedNoUser++
			continue
		}

		s, ok := summaries[a.UserID]
		if !ok {
			s = model.RatingSummary{
				UserID:      a.UserID,
				Breakdown:   emptyBreakdown(),
				LastUpdated: now,
			}
		}

		s.TotalPoints += a.Points

		if model.IsKnownCategory(a.Category) {
			s.Breakdown[a.Category] += a.Points
		} else {
			stats.UnknownCategories++
		}

		if date, ok := model.ResolveDate(a.Date); ok {
			if date.Year() == now.Year() {
				s.YearPoints += a.Points
				if date.Month() == now.Month() {
					s.MonthPoints += a.Points
				}
			}
		} else if a.Date != nil {
			stats.UnresolvableDates++
		}

		summaries[a.UserID] = s
	}

	return summaries, stats
}

func emptyBreakdown() map[string]int {
	b := make(map[string]int, len(model.Categories))
	for _, c := range model.Categories {
		b[c] = 0
	}
	return b
}
