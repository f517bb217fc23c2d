package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/models"
)

// reviewQueryColumns is the listing allow-list for reviews.
var reviewQueryColumns = NewResourceColumns(
	[]string{"review_id", "tour_id", "user_id", "review", "rating", "created_at", "row_version"},
	"row_version",
)

// reviewRepository is the PostgreSQL-backed implementation of
// [ReviewRepository].
type reviewRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReviewRepository constructs a [ReviewRepository] backed by the provided
// database connection and logger.
func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// CreateReview persists a new review.
func (r *reviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	created, err := scanReview(r.db.QueryRowContext(ctx, createReview,
		review.TourID, review.UserID, review.Review, review.Rating))
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.CreateReview").Msg("error creating review")

		// A foreign-key breach means the referenced tour is gone.
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Review{}, ErrTourNotFound
		}
		return models.Review{}, unavailable(err)
	}

	return created, nil
}

// FindReviewByID retrieves a single review or [ErrReviewNotFound].
func (r *reviewRepository) FindReviewByID(ctx context.Context, reviewID int64) (models.Review, error) {
	log := logger.FromContext(ctx)

	review, err := scanReview(r.db.QueryRowContext(ctx, findReviewByID, reviewID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		log.Err(err).Str("func", "*reviewRepository.FindReviewByID").Msg("error finding review")
		return models.Review{}, unavailable(err)
	}

	return review, nil
}

// UpdateReview overwrites the review text and rating.
func (r *reviewRepository) UpdateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	updated, err := scanReview(r.db.QueryRowContext(ctx, updateReview,
		review.Review, review.Rating, review.ReviewID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		log.Err(err).Str("func", "*reviewRepository.UpdateReview").Msg("error updating review")
		return models.Review{}, unavailable(err)
	}

	return updated, nil
}

// DeleteReview removes a review row.
func (r *reviewRepository) DeleteReview(ctx context.Context, reviewID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteReview, reviewID)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.DeleteReview").Msg("error deleting review")
		return unavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// ListReviews returns reviews shaped by the query features; tourID > 0
// scopes the listing to one tour (the nested route).
func (r *reviewRepository) ListReviews(ctx context.Context, tourID int64, params url.Values) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	base := sq.Select().From(models.Review{}.TableName())
	if tourID > 0 {
		base = base.Where(sq.Eq{"tour_id": tourID})
	}

	features := NewQueryFeatures(base, params, reviewQueryColumns).
		Filter().Sort().LimitFields().Paginate()

	query, args, err := features.ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.ListReviews").Msg("error listing reviews")
		return nil, unavailable(err)
	}
	defer rows.Close()

	selected := features.SelectedColumns()
	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		dests := make([]any, len(selected))
		for i, column := range selected {
			dests[i] = reviewScanDest(&review, column)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, unavailable(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return reviews, nil
}

// scanReview reads the full review column set (see reviewColumns) from a row.
func scanReview(row *sql.Row) (models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ReviewID,
		&review.TourID,
		&review.UserID,
		&review.Review,
		&review.Rating,
		&review.CreatedAt,
		&review.RowVersion,
	)
	if err != nil {
		return models.Review{}, err
	}

	return review, nil
}

// reviewScanDest maps a projected column to its scan destination.
func reviewScanDest(review *models.Review, column string) any {
	switch column {
	case "review_id":
		return &review.ReviewID
	case "tour_id":
		return &review.TourID
	case "user_id":
		return &review.UserID
	case "review":
		return &review.Review
	case "rating":
		return &review.Rating
	case "created_at":
		return &review.CreatedAt
	case "row_version":
		return &review.RowVersion
	default:
		var discard any
		return &discard
	}
}
