package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/models"
)

// userQueryColumns is the listing allow-list for accounts. Credential
// columns are deliberately absent: they can be neither filtered, sorted,
// nor projected through the feature builder.
var userQueryColumns = NewResourceColumns(
	[]string{"user_id", "name", "email", "role", "created_at"},
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// Every mutation is a single-row statement, so concurrent requests touching
// the same account never need cross-statement coordination.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the canonical database
// representation via a RETURNING clause.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrUnavailable].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.UserID, user.Name, user.Email, user.Role, user.PasswordHash, user.PasswordSetAt)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, unavailable(err)
	}

	return created, nil
}

// FindUserByEmail retrieves the account with the given email, credential
// fields included. An empty result set yields [ErrUserNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		return models.User{}, unavailable(err)
	}

	return user, nil
}

// FindUserByID retrieves the account with the given id, credential fields
// included.
func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error finding user by id")
		return models.User{}, unavailable(err)
	}

	return user, nil
}

// FindUserByResetHash retrieves the active account whose stored reset hash
// matches tokenHash with an expiry still in the future. The expiry
// predicate is part of the SQL, so a stale record and an absent record
// produce the same [ErrResetRecordNotFound].
func (r *userRepository) FindUserByResetHash(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByResetHash, tokenHash, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrResetRecordNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByResetHash").Msg("error finding user by reset hash")
		return models.User{}, unavailable(err)
	}

	return user, nil
}

// UpdatePassword writes the new credential state in one atomic statement:
// hash, password-set timestamp, and reset-record teardown together.
func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error {
	return r.execOnUser(ctx, "UpdatePassword", updatePassword, passwordHash, passwordSetAt, userID)
}

// SetResetRecord attaches a reset record, replacing any prior one. The
// single-UPDATE shape guarantees at most one live record per account.
func (r *userRepository) SetResetRecord(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	return r.execOnUser(ctx, "SetResetRecord", setResetRecord, tokenHash, expiresAt, userID)
}

// ClearResetRecord removes the account's reset record.
func (r *userRepository) ClearResetRecord(ctx context.Context, userID uuid.UUID) error {
	return r.execOnUser(ctx, "ClearResetRecord", clearResetRecord, userID)
}

// UpdateProfile changes display name and email, returning the stored state.
func (r *userRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, updateProfile, name, email, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error updating profile")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, unavailable(err)
	}

	return user, nil
}

// Deactivate flips the soft-delete flag.
func (r *userRepository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return r.execOnUser(ctx, "Deactivate", deactivateUser, userID)
}

// DeleteUser removes the account row entirely.
func (r *userRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return r.execOnUser(ctx, "DeleteUser", deleteUser, userID)
}

// ListUsers returns active accounts shaped by the query features.
func (r *userRepository) ListUsers(ctx context.Context, params url.Values) ([]models.User, error) {
	log := logger.FromContext(ctx)

	features := NewQueryFeatures(
		sq.Select().From(models.User{}.TableName()).Where(sq.Eq{"active": true}),
		params,
		userQueryColumns,
	).Filter().Sort().LimitFields().Paginate()

	query, args, err := features.ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, unavailable(err)
	}
	defer rows.Close()

	selected := features.SelectedColumns()
	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		dests := make([]any, len(selected))
		for i, column := range selected {
			dests[i] = userScanDest(&user, column)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, unavailable(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return users, nil
}

// execOnUser runs a single-row mutation and classifies its failures.
func (r *userRepository) execOnUser(ctx context.Context, op, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+op).Msg("error executing statement")
		return unavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// scanUser reads the full user column set (see userColumns) from a row.
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var resetHash sql.NullString
	var resetExpires sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.PasswordSetAt,
		&resetHash,
		&resetExpires,
		&user.Active,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if resetHash.Valid {
		user.ResetTokenHash = resetHash.String
	}
	if resetExpires.Valid {
		user.ResetExpiresAt = resetExpires.Time
	}

	return user, nil
}

// userScanDest maps a projected column to its scan destination. Unknown
// columns cannot occur: the feature builder already filtered them.
func userScanDest(user *models.User, column string) any {
	switch column {
	case "user_id":
		return &user.UserID
	case "name":
		return &user.Name
	case "email":
		return &user.Email
	case "role":
		return &user.Role
	case "created_at":
		return &user.CreatedAt
	default:
		var discard any
		return &discard
	}
}
