package models

import "time"

// Tour is a bookable catalog entity. Everything here is plain CRUD data;
// the interesting behavior lives in the query feature builder that shapes
// listing queries over this table.
type Tour struct {
	TourID          int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Duration        int       `json:"duration"`
	MaxGroupSize    int       `json:"max_group_size"`
	Difficulty      string    `json:"difficulty"`
	Price           float64   `json:"price"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description,omitempty"`
	RatingsAverage  float64   `json:"ratings_average"`
	RatingsQuantity int       `json:"ratings_quantity"`
	CreatedAt       time.Time `json:"created_at"`

	// RowVersion is internal bookkeeping metadata and is excluded from
	// default projections.
	RowVersion int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Tour model.
func (t Tour) TableName() string {
	return "tours"
}
