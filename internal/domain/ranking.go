package domain

import (
	"sort"
	"time"
)

// minTrendAge floors the age used in trend scoring so a subject created this
// instant does not divide by zero.
const minTrendAge = time.Second

// Subject is the rankable surface shared by posts and comments.
type Subject interface {
	CreatedTime() time.Time
	VoteTally() int
}

func (p Post) CreatedTime() time.Time { return p.CreatedAt }
func (p Post) VoteTally() int         { return p.Likes - p.Dislikes }

func (c Comment) CreatedTime() time.Time { return c.CreatedAt }
func (c Comment) VoteTally() int         { return c.Likes - c.Dislikes }

// SortByRecent orders subjects newest first. Stable: subjects sharing a
// timestamp keep their relative input order.
func SortByRecent[S Subject](subjects []S) {
	sort.SliceStable(subjects, func(i, j int) bool {
		return subjects[i].CreatedTime().After(subjects[j].CreatedTime())
	})
}

// SortByPopularity orders subjects by descending trend score: net votes
// divided by age. Age is computed once against now for the whole invocation,
// so the ranking is point-in-time and must be recomputed per request. Ties
// are broken arbitrarily.
func SortByPopularity[S Subject](subjects []S, now time.Time) {
	sort.Slice(subjects, func(i, j int) bool {
		return trendScore(subjects[i], now) > trendScore(subjects[j], now)
	})
}

func trendScore(s Subject, now time.Time) float64 {
	age := now.Sub(s.CreatedTime())
	if age < minTrendAge {
		age = minTrendAge
	}
	return float64(s.VoteTally()) / age.Seconds()
}
