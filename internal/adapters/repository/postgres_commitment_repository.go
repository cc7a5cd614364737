package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.CommitmentRepository = (*PostgresCommitmentRepository)(nil)

type PostgresCommitmentRepository struct {
	db *sqlx.DB
}

func NewPostgresCommitmentRepository(db *sqlx.DB) *PostgresCommitmentRepository {
	return &PostgresCommitmentRepository{db: db}
}

const commitmentColumns = `id, user_id, kind, target_per_week, duration_weeks, start_date,
	is_active, created_at, updated_at, deactivated_at`

func (r *PostgresCommitmentRepository) Create(ctx context.Context, c *domain.Commitment) error {
	query := `
		INSERT INTO commitments (` + commitmentColumns + `)
		VALUES (:id, :user_id, :kind, :target_per_week, :duration_weeks, :start_date,
			:is_active, :created_at, :updated_at, :deactivated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create commitment failed: %w", err)
	}
	return nil
}

func (r *PostgresCommitmentRepository) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	var c domain.Commitment
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE id = $1`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommitmentNotFound
		}
		return nil, err
	}
	c.StartDate = domain.Day(c.StartDate)
	return &c, nil
}

func (r *PostgresCommitmentRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Commitment, error) {
	query := `
		SELECT ` + commitmentColumns + `
		FROM commitments
		WHERE user_id = $1 AND is_active
		ORDER BY start_date ASC, created_at ASC`

	list := []*domain.Commitment{}
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list commitments failed: %w", err)
	}
	for _, c := range list {
		c.StartDate = domain.Day(c.StartDate)
	}
	return list, nil
}

func (r *PostgresCommitmentRepository) Deactivate(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE commitments
		SET is_active = FALSE, deactivated_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND is_active`,
		now, id, userID,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrCommitmentNotFound
	}
	return domain.ErrCommitmentInactive
}
