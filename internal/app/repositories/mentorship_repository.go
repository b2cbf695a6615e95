package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/dberrors"
	"github.com/yigit/mentorhub/internal/pkg/logger"
)

var mentorshipColumns = []string{
	"id", "mentor_id", "mentee_id", "title", "description", "status",
	"start_date", "end_date", "created_at", "updated_at",
}

// MentorshipRepository handles database operations for mentorships
type MentorshipRepository struct {
	db *pgxpool.Pool
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(db *pgxpool.Pool) *MentorshipRepository {
	return &MentorshipRepository{db: db}
}

func scanMentorship(row scanner) (*models.Mentorship, error) {
	var m models.Mentorship
	err := row.Scan(&m.ID, &m.MentorID, &m.MenteeID, &m.Title, &m.Description, &m.Status,
		&m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MentorshipRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Mentorship, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to query mentorships")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Mentorship, 0)
	for rows.Next() {
		m, err := scanMentorship(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mentorship: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mentorships: %w", err)
	}
	return list, nil
}

// List returns every mentorship in insertion order
func (r *MentorshipRepository) List(ctx context.Context) ([]*models.Mentorship, error) {
	return r.query(ctx, psql.Select(mentorshipColumns...).From("mentorships").OrderBy("id ASC"))
}

// byUserQuery selects mentorships where userID is either party
func (r *MentorshipRepository) byUserQuery(userID int64) squirrel.SelectBuilder {
	return psql.Select(mentorshipColumns...).
		From("mentorships").
		Where(squirrel.Or{squirrel.Eq{"mentor_id": userID}, squirrel.Eq{"mentee_id": userID}}).
		OrderBy("id ASC")
}

// ListByUser returns mentorships where userID is mentor or mentee
func (r *MentorshipRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error) {
	return r.query(ctx, r.byUserQuery(userID))
}

// GetByID retrieves a mentorship by ID
func (r *MentorshipRepository) GetByID(ctx context.Context, id int64) (*models.Mentorship, error) {
	sql, args, err := psql.Select(mentorshipColumns...).From("mentorships").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	m, err := scanMentorship(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorshipNotFound
		}
		return nil, fmt.Errorf("error retrieving mentorship: %w", err)
	}
	return m, nil
}

// Create inserts a mentorship and fills in its ID and timestamps
func (r *MentorshipRepository) Create(ctx context.Context, m *models.Mentorship) error {
	sql, args, err := psql.Insert("mentorships").
		Columns("mentor_id", "mentee_id", "title", "description", "status", "start_date", "end_date").
		Values(m.MentorID, m.MenteeID, m.Title, m.Description, string(m.Status), m.StartDate, m.EndDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return mapMentorshipWriteError(err)
	}
	return nil
}

// updateQuery writes every mutable column of m
func (r *MentorshipRepository) updateQuery(m *models.Mentorship) squirrel.UpdateBuilder {
	return psql.Update("mentorships").
		Set("mentor_id", m.MentorID).
		Set("mentee_id", m.MenteeID).
		Set("title", m.Title).
		Set("description", m.Description).
		Set("status", string(m.Status)).
		Set("start_date", m.StartDate).
		Set("end_date", m.EndDate).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": m.ID}).
		Suffix("RETURNING updated_at")
}

// Update overwrites the stored row with m
func (r *MentorshipRepository) Update(ctx context.Context, m *models.Mentorship) error {
	sql, args, err := r.updateQuery(m).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrMentorshipNotFound
		}
		return mapMentorshipWriteError(err)
	}
	return nil
}

// Delete removes a mentorship
func (r *MentorshipRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("mentorships").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMentorshipNotFound
	}
	return nil
}

func mapMentorshipWriteError(err error) error {
	switch {
	case dberrors.IsForeignKeyError(err, ""):
		return fmt.Errorf("%w: mentor or mentee does not exist", apperrors.ErrUserNotFound)
	case dberrors.IsCheckConstraintError(err, "mentorships_distinct_users"):
		return apperrors.ErrSelfMentorship
	case dberrors.IsCheckConstraintError(err, "mentorships_status_check"):
		return apperrors.ErrInvalidMentorshipStatus
	}
	logger.Error().Err(err).Msg("Mentorship write failed")
	return fmt.Errorf("error writing mentorship: %w", err)
}
