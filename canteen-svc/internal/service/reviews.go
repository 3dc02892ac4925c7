package service

import (
	"time"

	"byteme-canteen/canteen-svc/internal/domain"
)

// ReviewLedger appends reviews to items. Ratings are stored as given.
type ReviewLedger struct {
	now func() time.Time
}

func NewReviewLedger(now func() time.Time) *ReviewLedger {
	if now == nil {
		now = time.Now
	}
	return &ReviewLedger{now: now}
}

func (l *ReviewLedger) AddReview(item *domain.FoodItem, customerName, text string, rating int) domain.Review {
	review := domain.Review{
		CustomerName: customerName,
		Text:         text,
		Rating:       rating,
		CreatedAt:    l.now(),
	}
	item.Reviews = append(item.Reviews, review)
	return review
}

func (l *ReviewLedger) List(item *domain.FoodItem) []domain.Review {
	out := make([]domain.Review, len(item.Reviews))
	copy(out, item.Reviews)
	return out
}
