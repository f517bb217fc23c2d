package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/store"
	"github.com/tournest/tournest/models"
)

// reviewService is CRUD glue over reviews. Mutations check ownership: a
// review belongs to its author, and only the author or an administrator
// may change or remove it.
type reviewService struct {
	reviewRepository store.ReviewRepository
	logger           *logger.Logger
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviewRepository store.ReviewRepository, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		logger:           logger,
	}
}

func (s *reviewService) List(ctx context.Context, tourID int64, params url.Values) ([]models.Review, error) {
	return s.reviewRepository.ListReviews(ctx, tourID, params)
}

func (s *reviewService) Get(ctx context.Context, reviewID int64) (models.Review, error) {
	return s.reviewRepository.FindReviewByID(ctx, reviewID)
}

// Create stores a review authored by the authenticated identity. The
// author id always comes from the identity, never from the request body.
func (s *reviewService) Create(ctx context.Context, author models.User, review models.Review) (models.Review, error) {
	if err := validateReviewContent(review); err != nil {
		return models.Review{}, err
	}
	if review.TourID <= 0 {
		return models.Review{}, fmt.Errorf("%w: tour id is required", ErrValidation)
	}

	review.UserID = author.UserID
	return s.reviewRepository.CreateReview(ctx, review)
}

// Update changes the text and rating of an existing review. The tour
// binding and the author are fixed at creation; body-supplied values for
// either are ignored.
func (s *reviewService) Update(ctx context.Context, actor models.User, review models.Review) (models.Review, error) {
	if err := validateReviewContent(review); err != nil {
		return models.Review{}, err
	}

	existing, err := s.reviewRepository.FindReviewByID(ctx, review.ReviewID)
	if err != nil {
		return models.Review{}, err
	}
	if err := requireOwnership(actor, existing); err != nil {
		return models.Review{}, err
	}

	review.TourID = existing.TourID
	review.UserID = existing.UserID
	return s.reviewRepository.UpdateReview(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, actor models.User, reviewID int64) error {
	existing, err := s.reviewRepository.FindReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := requireOwnership(actor, existing); err != nil {
		return err
	}

	return s.reviewRepository.DeleteReview(ctx, reviewID)
}

// requireOwnership permits the review's author and administrators.
func requireOwnership(actor models.User, review models.Review) error {
	if actor.Role == models.RoleAdmin || actor.UserID == review.UserID {
		return nil
	}
	return ErrForbidden
}

func validateReviewContent(review models.Review) error {
	if strings.TrimSpace(review.Review) == "" {
		return fmt.Errorf("%w: review text is required", ErrValidation)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}
