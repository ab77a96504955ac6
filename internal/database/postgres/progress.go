package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/repository"
)

// ProgressRepository stores progress documents in the user_progress table
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

type progressRow struct {
	badges          []byte
	milestones      []byte
	completedQuests []byte
	streak          []byte
}

func encodeProgress(p *domain.UserProgress) (progressRow, error) {
	var row progressRow
	var err error

	badges := p.Gamification.Badges
	if badges == nil {
		badges = []string{}
	}
	if row.badges, err = json.Marshal(badges); err != nil {
		return row, err
	}
	if row.milestones, err = domain.EncodeMilestones(p.Gamification.Milestones); err != nil {
		return row, err
	}
	quests := p.CompletedQuests
	if quests == nil {
		quests = []domain.CompletedQuest{}
	}
	if row.completedQuests, err = json.Marshal(quests); err != nil {
		return row, err
	}
	if row.streak, err = json.Marshal(p.Streak); err != nil {
		return row, err
	}
	return row, nil
}

func scanProgress(row pgx.Row) (*domain.UserProgress, error) {
	var p domain.UserProgress
	var raw progressRow

	err := row.Scan(
		&p.UserID,
		&p.XPTotal,
		&p.Gamification.Level,
		&p.Gamification.NextLevelXP,
		&raw.badges,
		&raw.milestones,
		&raw.completedQuests,
		&raw.streak,
		&p.CreatedAt,
		&p.Gamification.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProgress, err)
	}

	if err := json.Unmarshal(raw.badges, &p.Gamification.Badges); err != nil {
		return nil, fmt.Errorf("%s: badges: %w", ErrMsgFailedToDecodeProgress, err)
	}
	if p.Gamification.Milestones, err = domain.DecodeMilestones(raw.milestones); err != nil {
		return nil, fmt.Errorf("%s: milestones: %w", ErrMsgFailedToDecodeProgress, err)
	}
	if err := json.Unmarshal(raw.completedQuests, &p.CompletedQuests); err != nil {
		return nil, fmt.Errorf("%s: completed quests: %w", ErrMsgFailedToDecodeProgress, err)
	}
	if err := json.Unmarshal(raw.streak, &p.Streak); err != nil {
		return nil, fmt.Errorf("%s: streak: %w", ErrMsgFailedToDecodeProgress, err)
	}
	return &p, nil
}

// CreateProgress implements repository.Progress
func (r *ProgressRepository) CreateProgress(ctx context.Context, p *domain.UserProgress) error {
	row, err := encodeProgress(p)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeProgress, err)
	}

	_, err = r.db.Exec(ctx, SQLInsertProgress,
		p.UserID, p.XPTotal, p.Gamification.Level, p.Gamification.NextLevelXP,
		row.badges, row.milestones, row.completedQuests, row.streak,
		p.CreatedAt, p.Gamification.UpdatedAt)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return domain.ErrProgressExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveProgress, err)
	}
	return nil
}

// GetProgress implements repository.Progress
func (r *ProgressRepository) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return scanProgress(r.db.QueryRow(ctx, SQLSelectProgress, userID))
}

// UpdateProgress implements repository.Progress. The row is locked with
// SELECT ... FOR UPDATE for the duration of fn.
func (r *ProgressRepository) UpdateProgress(ctx context.Context, userID string, fn repository.UpdateFunc) (*domain.UserProgress, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	p, err := scanProgress(tx.QueryRow(ctx, SQLSelectProgressForUpdate, userID))
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}
	p.UserID = userID
	if p.Gamification.UpdatedAt.IsZero() {
		p.Gamification.UpdatedAt = time.Now().UTC()
	}

	row, err := encodeProgress(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeProgress, err)
	}

	_, err = tx.Exec(ctx, SQLUpdateProgress,
		userID, p.XPTotal, p.Gamification.Level, p.Gamification.NextLevelXP,
		row.badges, row.milestones, row.completedQuests, row.streak,
		p.Gamification.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveProgress, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return p, nil
}
