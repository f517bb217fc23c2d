package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user-authored review of a tour. The author is always taken
// from the authenticated identity, never from the request body.
type Review struct {
	ReviewID  int64     `json:"id"`
	TourID    int64     `json:"tour_id"`
	UserID    uuid.UUID `json:"user_id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`

	// RowVersion is internal bookkeeping metadata and is excluded from
	// default projections.
	RowVersion int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}
