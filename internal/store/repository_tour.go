package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	sq "github.com/Masterminds/squirrel"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/models"
)

// tourQueryColumns is the listing allow-list for tours. row_version is
// selectable on explicit request but excluded from the default projection.
var tourQueryColumns = NewResourceColumns(
	[]string{
		"tour_id", "name", "slug", "duration", "max_group_size", "difficulty",
		"price", "summary", "description", "ratings_average", "ratings_quantity",
		"created_at", "row_version",
	},
	"row_version",
)

// tourRepository is the PostgreSQL-backed implementation of [TourRepository].
type tourRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTourRepository constructs a [TourRepository] backed by the provided
// database connection and logger.
func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	logger.Debug().Msg("creating tour repository")
	return &tourRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTour persists a new tour and returns it with server-assigned fields.
func (r *tourRepository) CreateTour(ctx context.Context, tour models.Tour) (models.Tour, error) {
	log := logger.FromContext(ctx)

	created, err := scanTour(r.db.QueryRowContext(ctx, createTour,
		tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description))
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.CreateTour").Msg("error creating tour")
		return models.Tour{}, unavailable(err)
	}

	return created, nil
}

// FindTourByID retrieves a single tour or [ErrTourNotFound].
func (r *tourRepository) FindTourByID(ctx context.Context, tourID int64) (models.Tour, error) {
	log := logger.FromContext(ctx)

	tour, err := scanTour(r.db.QueryRowContext(ctx, findTourByID, tourID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tour{}, ErrTourNotFound
		}
		log.Err(err).Str("func", "*tourRepository.FindTourByID").Msg("error finding tour")
		return models.Tour{}, unavailable(err)
	}

	return tour, nil
}

// UpdateTour overwrites the mutable tour fields and bumps row_version.
func (r *tourRepository) UpdateTour(ctx context.Context, tour models.Tour) (models.Tour, error) {
	log := logger.FromContext(ctx)

	updated, err := scanTour(r.db.QueryRowContext(ctx, updateTour,
		tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.Price, tour.Summary, tour.Description, tour.TourID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tour{}, ErrTourNotFound
		}
		log.Err(err).Str("func", "*tourRepository.UpdateTour").Msg("error updating tour")
		return models.Tour{}, unavailable(err)
	}

	return updated, nil
}

// DeleteTour removes a tour row.
func (r *tourRepository) DeleteTour(ctx context.Context, tourID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteTour, tourID)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.DeleteTour").Msg("error deleting tour")
		return unavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if affected == 0 {
		return ErrTourNotFound
	}

	return nil
}

// ListTours returns tours shaped by the declarative query features:
// filtering, sorting, projection, and pagination, in that fixed order.
func (r *tourRepository) ListTours(ctx context.Context, params url.Values) ([]models.Tour, error) {
	log := logger.FromContext(ctx)

	features := NewQueryFeatures(
		sq.Select().From(models.Tour{}.TableName()),
		params,
		tourQueryColumns,
	).Filter().Sort().LimitFields().Paginate()

	query, args, err := features.ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.ListTours").Msg("error listing tours")
		return nil, unavailable(err)
	}
	defer rows.Close()

	selected := features.SelectedColumns()
	tours := make([]models.Tour, 0)
	for rows.Next() {
		var tour models.Tour
		dests := make([]any, len(selected))
		for i, column := range selected {
			dests[i] = tourScanDest(&tour, column)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, unavailable(err)
		}
		tours = append(tours, tour)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return tours, nil
}

// scanTour reads the full tour column set (see tourColumns) from a row.
func scanTour(row *sql.Row) (models.Tour, error) {
	var tour models.Tour
	err := row.Scan(
		&tour.TourID,
		&tour.Name,
		&tour.Slug,
		&tour.Duration,
		&tour.MaxGroupSize,
		&tour.Difficulty,
		&tour.Price,
		&tour.Summary,
		&tour.Description,
		&tour.RatingsAverage,
		&tour.RatingsQuantity,
		&tour.CreatedAt,
		&tour.RowVersion,
	)
	if err != nil {
		return models.Tour{}, err
	}

	return tour, nil
}

// tourScanDest maps a projected column to its scan destination.
func tourScanDest(tour *models.Tour, column string) any {
	switch column {
	case "tour_id":
		return &tour.TourID
	case "name":
		return &tour.Name
	case "slug":
		return &tour.Slug
	case "duration":
		return &tour.Duration
	case "max_group_size":
		return &tour.MaxGroupSize
	case "difficulty":
		return &tour.Difficulty
	case "price":
		return &tour.Price
	case "summary":
		return &tour.Summary
	case "description":
		return &tour.Description
	case "ratings_average":
		return &tour.RatingsAverage
	case "ratings_quantity":
		return &tour.RatingsQuantity
	case "created_at":
		return &tour.CreatedAt
	case "row_version":
		return &tour.RowVersion
	default:
		var discard any
		return &discard
	}
}
