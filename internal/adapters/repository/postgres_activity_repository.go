package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.ActivityRepository = (*PostgresActivityRepository)(nil)

type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, record *domain.ActivityRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO activities (id, user_id, kind, activity_date, notes, created_at)
		VALUES (:id, :user_id, :kind, :activity_date, :notes, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create activity failed: %w", err)
	}
	return nil
}

func (r *PostgresActivityRepository) GetByID(ctx context.Context, id string) (*domain.ActivityRecord, error) {
	var record domain.ActivityRecord
	query := `SELECT id, user_id, kind, activity_date, notes, created_at FROM activities WHERE id = $1`

	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	record.Date = domain.Day(record.Date)
	return &record, nil
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *PostgresActivityRepository) ListByUserAndKind(ctx context.Context, userID string, kind domain.ActivityKind, from, to time.Time) ([]*domain.ActivityRecord, error) {
	conds := []string{"user_id = $1", "kind = $2"}
	args := []interface{}{userID, kind}

	if !from.IsZero() {
		args = append(args, domain.Day(from))
		conds = append(conds, fmt.Sprintf("activity_date >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, domain.Day(to))
		conds = append(conds, fmt.Sprintf("activity_date <= $%d", len(args)))
	}

	query := `
		SELECT id, user_id, kind, activity_date, notes, created_at
		FROM activities
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY activity_date DESC, created_at DESC`

	records := []*domain.ActivityRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("repository: list activities failed: %w", err)
	}
	for _, rec := range records {
		rec.Date = domain.Day(rec.Date)
	}
	return records, nil
}
