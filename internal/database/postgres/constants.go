package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeForeignKeyViolation is the PostgreSQL error code for foreign key violations
	PgErrorCodeForeignKeyViolation = "23503"
)

// Progress queries
const (
	SQLInsertProgress = `
		INSERT INTO user_progress (user_id, xp_total, level, next_level_xp, badges, milestones, completed_quests, streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	SQLSelectProgress = `
		SELECT user_id, xp_total, level, next_level_xp, badges, milestones, completed_quests, streak, created_at, updated_at
		FROM user_progress
		WHERE user_id = $1
	`

	SQLSelectProgressForUpdate = SQLSelectProgress + ` FOR UPDATE`

	SQLUpdateProgress = `
		UPDATE user_progress
		SET xp_total = $2, level = $3, next_level_xp = $4, badges = $5, milestones = $6,
		    completed_quests = $7, streak = $8, updated_at = $9
		WHERE user_id = $1
	`
)

// Savings queries
const (
	SQLInsertSavingsEvent = `
		INSERT INTO savings_events (id, user_id, amount, period, source, verified, quest_id, category, title, xp_awarded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12)
	`

	SQLUpdateSavingsEvent = `
		UPDATE savings_events
		SET amount = $3, period = $4, source = $5, verified = $6, quest_id = NULLIF($7, ''),
		    category = NULLIF($8, ''), title = NULLIF($9, ''), updated_at = $10
		WHERE id = $1 AND user_id = $2
	`

	SQLDeleteSavingsEvent = `DELETE FROM savings_events WHERE id = $1 AND user_id = $2`

	savingsColumns = `id, user_id, amount::float8, period, source, verified, COALESCE(quest_id, ''), COALESCE(category, ''), COALESCE(title, ''), xp_awarded, created_at, updated_at`

	SQLSelectSavingsEvent = `SELECT ` + savingsColumns + ` FROM savings_events WHERE id = $1 AND user_id = $2`

	SQLListSavingsEvents = `SELECT ` + savingsColumns + ` FROM savings_events WHERE user_id = $1 ORDER BY created_at, id`
)

// Activity queries
const (
	SQLInsertActivity = `
		INSERT INTO user_activity (id, user_id, event_type, source, payload, occurred_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`

	SQLListActivity = `
		SELECT id, user_id, event_type, COALESCE(source, ''), payload, occurred_at
		FROM user_activity
		WHERE user_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2
	`

	SQLPruneActivity = `DELETE FROM user_activity WHERE occurred_at < $1`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToEncodeProgress    = "failed to encode progress"
	ErrMsgFailedToDecodeProgress    = "failed to decode progress"
	ErrMsgFailedToLoadProgress      = "failed to load progress"
	ErrMsgFailedToSaveProgress      = "failed to save progress"
	ErrMsgFailedToSaveSavingsEvent  = "failed to save savings event"
	ErrMsgFailedToLoadSavingsEvents = "failed to load savings events"
	ErrMsgFailedToSaveActivity      = "failed to save activity"
	ErrMsgFailedToLoadActivity      = "failed to load activity"
	ErrMsgFailedToPruneActivity     = "failed to prune activity"
)
