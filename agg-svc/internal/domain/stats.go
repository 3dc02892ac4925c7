package domain

import "errors"

var ErrNoRatings = errors.New("no ratings recorded")

type ItemScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type ItemRating struct {
	Name        string  `json:"name"`
	ReviewCount int64   `json:"review_count"`
	RatingSum   int64   `json:"rating_sum"`
	Average     float64 `json:"average"`
}

type StatsResponse struct {
	MostPopular      *ItemScore       `json:"most_popular,omitempty"`
	MostPopularToday *ItemScore       `json:"most_popular_today,omitempty"`
	Statuses         map[string]int64 `json:"statuses"`
}
