package store

const (
	userColumns = `user_id, name, email, role, password_hash, password_set_at, reset_token_hash, reset_expires_at, active, created_at`

	createUser = `INSERT INTO users (user_id, name, email, role, password_hash, password_set_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	// The expiry predicate lives in the query itself so that an expired
	// record and a missing record produce the same empty result set.
	findUserByResetHash = `SELECT ` + userColumns + `
    FROM users
    WHERE reset_token_hash = $1 AND reset_expires_at > $2 AND active;`

	// Password mutation is a single atomic statement: the new hash, the
	// forward-moving timestamp, and the reset-record teardown all land in
	// one row write.
	updatePassword = `UPDATE users
    SET password_hash = $1, password_set_at = $2, reset_token_hash = NULL, reset_expires_at = NULL
    WHERE user_id = $3;`

	setResetRecord = `UPDATE users
    SET reset_token_hash = $1, reset_expires_at = $2
    WHERE user_id = $3;`

	clearResetRecord = `UPDATE users
    SET reset_token_hash = NULL, reset_expires_at = NULL
    WHERE user_id = $1;`

	updateProfile = `UPDATE users
    SET name = $1, email = $2
    WHERE user_id = $3
    RETURNING ` + userColumns + `;`

	deactivateUser = `UPDATE users
    SET active = FALSE
    WHERE user_id = $1;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`

	tourColumns = `tour_id, name, slug, duration, max_group_size, difficulty, price, summary, description, ratings_average, ratings_quantity, created_at, row_version`

	createTour = `INSERT INTO tours (name, slug, duration, max_group_size, difficulty, price, summary, description)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + tourColumns + `;`

	findTourByID = `SELECT ` + tourColumns + `
    FROM tours
    WHERE tour_id = $1;`

	updateTour = `UPDATE tours
    SET name = $1, slug = $2, duration = $3, max_group_size = $4, difficulty = $5, price = $6, summary = $7, description = $8, row_version = row_version + 1
    WHERE tour_id = $9
    RETURNING ` + tourColumns + `;`

	deleteTour = `DELETE FROM tours
    WHERE tour_id = $1;`

	reviewColumns = `review_id, tour_id, user_id, review, rating, created_at, row_version`

	createReview = `INSERT INTO reviews (tour_id, user_id, review, rating)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + reviewColumns + `;`

	findReviewByID = `SELECT ` + reviewColumns + `
    FROM reviews
    WHERE review_id = $1;`

	updateReview = `UPDATE reviews
    SET review = $1, rating = $2, row_version = row_version + 1
    WHERE review_id = $3
    RETURNING ` + reviewColumns + `;`

	deleteReview = `DELETE FROM reviews
    WHERE review_id = $1;`
)
