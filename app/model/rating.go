package model

import "time"

// Ranking periods accepted by the rating query layer.
const (
	PeriodAllTime = "all"
	PeriodYear    = "year"
	PeriodMonth   = "month"
)

// CategoryAll re-ranks by nothing in particular: the period field is used as is.
const CategoryAll = "all"

// RatingSummary is one document in the Mongo "ratings" collection, one per
// user, overwritten wholesale on every recompute run.
type RatingSummary struct {
	UserID      string         `bson:"userId" json:"user_id"`
	TotalPoints int            `bson:"totalPoints" json:"total_points"`
	YearPoints  int            `bson:"yearPoints" json:"year_points"`
	MonthPoints int            `bson:"monthPoints" json:"month_points"`
	Breakdown   map[string]int `bson:"breakdown" json:"breakdown"`
	LastUpdated time.Time      `bson:"lastUpdated" json:"last_updated"`
}

// RankedEntry is one row of a leaderboard produced by the query layer.
type RankedEntry struct {
	Rank      int            `json:"rank"`
	UserID    string         `json:"user_id"`
	FullName  string         `json:"full_name,omitempty"`
	Points    int            `json:"points"`
	Breakdown map[string]int `json:"breakdown"`
}

// RecomputeReport is returned to the operator that triggered a run.
type RecomputeReport struct {
	UsersUpdated      int       `json:"users_updated"`
	SkippedNoUser     int       `json:"skipped_missing_user_id"`
	UnresolvableDates int       `json:"unresolvable_dates"`
	UnknownCategories int       `json:"unknown_categories"`
	RanAt             time.Time `json:"ran_at"`
}
