// Package store implements the persistence layer: a pgx-backed PostgreSQL
// connection, one repository per aggregate, and the query feature builder
// that shapes listing queries from declarative request parameters.
package store

import "github.com/tournest/tournest/internal/logger"

// Storages bundles every repository behind one constructor so the service
// layer receives a single dependency.
type Storages struct {
	UserRepository   UserRepository
	TourRepository   TourRepository
	ReviewRepository ReviewRepository
}

// NewStorages wires all repositories to the shared database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, logger),
		TourRepository:   NewTourRepository(db, logger),
		ReviewRepository: NewReviewRepository(db, logger),
	}
}
