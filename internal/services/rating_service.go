package services

import (
	"fmt"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errRatingRange          = apperrors.NewBadRequestError("Rating must be between 1 and 5")
	errReviewedUserRequired = apperrors.NewBadRequestError("reviewed_user_id is required")
)

// UserRatings is the rating summary of one user. AverageRating is a "%.2f"
// string, or the number 0 when there are no reviews.
type UserRatings struct {
	AverageRating interface{}                 `json:"average_rating"`
	TotalReviews  int                         `json:"total_reviews"`
	Ratings       []models.RatingWithReviewer `json:"ratings"`
}

type RatingService interface {
	Create(db *gorm.DB, reviewerID int64, req *dto.CreateRatingRequest) (*models.Rating, error)
	ForUser(db *gorm.DB, userID int64) (*UserRatings, error)
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
}

func NewRatingService(ratingRepo repositories.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func (s *ratingService) Create(db *gorm.DB, reviewerID int64, req *dto.CreateRatingRequest) (*models.Rating, error) {
	if req.ReviewedUserID == 0 {
		return nil, errReviewedUserRequired
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errRatingRange
	}

	rating := &models.Rating{
		ReviewerID:     reviewerID,
		ReviewedUserID: req.ReviewedUserID,
		Rating:         req.Rating,
		Review:         req.Review,
	}
	if err := s.ratingRepo.Create(db, rating); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rating, nil
}

func (s *ratingService) ForUser(db *gorm.DB, userID int64) (*UserRatings, error) {
	ratings, err := s.ratingRepo.ListForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return SummarizeRatings(ratings), nil
}

func SummarizeRatings(ratings []models.RatingWithReviewer) *UserRatings {
	if ratings == nil {
		ratings = []models.RatingWithReviewer{}
	}
	out := &UserRatings{
		AverageRating: 0,
		TotalReviews:  len(ratings),
		Ratings:       ratings,
	}
	if len(ratings) == 0 {
		return out
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating.Rating
	}
	out.AverageRating = fmt.Sprintf("%.2f", float64(sum)/float64(len(ratings)))
	return out
}
