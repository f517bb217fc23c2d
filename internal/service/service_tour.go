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

// tourDifficulties enumerates the accepted difficulty values.
var tourDifficulties = map[string]struct{}{
	"easy":      {},
	"medium":    {},
	"difficult": {},
}

// tourService is thin CRUD glue between the HTTP layer and the tour
// repository; listing queries are shaped entirely by the repository's
// query feature builder.
type tourService struct {
	tourRepository store.TourRepository
	logger         *logger.Logger
}

// NewTourService constructs a TourService.
func NewTourService(tourRepository store.TourRepository, logger *logger.Logger) TourService {
	return &tourService{
		tourRepository: tourRepository,
		logger:         logger,
	}
}

func (s *tourService) List(ctx context.Context, params url.Values) ([]models.Tour, error) {
	return s.tourRepository.ListTours(ctx, params)
}

func (s *tourService) Get(ctx context.Context, tourID int64) (models.Tour, error) {
	return s.tourRepository.FindTourByID(ctx, tourID)
}

func (s *tourService) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if err := validateTour(tour); err != nil {
		return models.Tour{}, err
	}
	tour.Slug = slugify(tour.Name)

	return s.tourRepository.CreateTour(ctx, tour)
}

func (s *tourService) Update(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if err := validateTour(tour); err != nil {
		return models.Tour{}, err
	}
	tour.Slug = slugify(tour.Name)

	return s.tourRepository.UpdateTour(ctx, tour)
}

func (s *tourService) Delete(ctx context.Context, tourID int64) error {
	return s.tourRepository.DeleteTour(ctx, tourID)
}

func validateTour(tour models.Tour) error {
	if strings.TrimSpace(tour.Name) == "" {
		return fmt.Errorf("%w: tour name is required", ErrValidation)
	}
	if tour.Price <= 0 {
		return fmt.Errorf("%w: tour price must be positive", ErrValidation)
	}
	if _, ok := tourDifficulties[tour.Difficulty]; !ok {
		return fmt.Errorf("%w: difficulty must be one of easy, medium, difficult", ErrValidation)
	}
	return nil
}

// slugify lowercases the name and joins its words with dashes.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
