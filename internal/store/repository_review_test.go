package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/models"
)

var fullReviewColumns = []string{
	"review_id", "tour_id", "user_id", "review", "rating", "created_at", "row_version",
}

func newTestReviewRepo(t *testing.T) (*reviewRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &reviewRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func fullReviewRow(review models.Review) *sqlmock.Rows {
	return sqlmock.NewRows(fullReviewColumns).
		AddRow(review.ReviewID, review.TourID, review.UserID, review.Review,
			review.Rating, review.CreatedAt, review.RowVersion)
}

func TestCreateReview_Success(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	review := models.Review{
		TourID: 5,
		UserID: uuid.New(),
		Review: "Unforgettable",
		Rating: 5,
	}
	stored := review
	stored.ReviewID = 1
	stored.CreatedAt = time.Now()
	stored.RowVersion = 1

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(review.TourID, review.UserID, review.Review, review.Rating).
		WillReturnRows(fullReviewRow(stored))

	created, err := repo.CreateReview(context.Background(), review)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ReviewID != 1 {
		t.Errorf("expected assigned review id, got %d", created.ReviewID)
	}
	if created.UserID != review.UserID {
		t.Errorf("author changed during insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A foreign-key breach on insert means the referenced tour does not exist,
// which callers must see as a not-found rather than an outage.
func TestCreateReview_TourGone(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateReview(context.Background(), models.Review{TourID: 404, Rating: 3})
	if !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestCreateReview_DriverError(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.CreateReview(context.Background(), models.Review{TourID: 5, Rating: 3})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFindReviewByID_NotFound(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindReviewByID(context.Background(), 42)
	if !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestUpdateReview_Success(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	stored := models.Review{
		ReviewID:   7,
		TourID:     5,
		UserID:     uuid.New(),
		Review:     "Edited text",
		Rating:     4,
		CreatedAt:  time.Now(),
		RowVersion: 2,
	}

	mock.ExpectQuery("UPDATE reviews").
		WithArgs(stored.Review, stored.Rating, stored.ReviewID).
		WillReturnRows(fullReviewRow(stored))

	updated, err := repo.UpdateReview(context.Background(), models.Review{
		ReviewID: 7, Review: "Edited text", Rating: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.RowVersion != 2 {
		t.Errorf("expected bumped row version, got %d", updated.RowVersion)
	}
}

func TestDeleteReview_NotFound(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteReview(context.Background(), 42)
	if !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestListReviews_ScopedToTour(t *testing.T) {
	repo, mock, db := newTestReviewRepo(t)
	defer db.Close()

	author := uuid.New()
	rows := sqlmock.NewRows([]string{"review_id", "tour_id", "user_id", "review", "rating", "created_at"}).
		AddRow(int64(1), int64(5), author, "Great guide", 5, time.Now())

	mock.ExpectQuery(`SELECT review_id, tour_id, user_id, review, rating, created_at FROM reviews WHERE tour_id = \$1 ORDER BY created_at DESC LIMIT 100 OFFSET 0`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	reviews, err := repo.ListReviews(context.Background(), 5, url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected one review, got %d", len(reviews))
	}
	if reviews[0].UserID != author {
		t.Errorf("unexpected author: %s", reviews[0].UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
