package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/dberrors"
	"github.com/yigit/mentorhub/internal/pkg/logger"
)

// GroupMemberRepository handles database operations for group memberships
type GroupMemberRepository struct {
	db *pgxpool.Pool
}

// NewGroupMemberRepository creates a new GroupMemberRepository
func NewGroupMemberRepository(db *pgxpool.Pool) *GroupMemberRepository {
	return &GroupMemberRepository{db: db}
}

func (r *GroupMemberRepository) selectQuery() squirrel.SelectBuilder {
	return psql.Select("gm.id", "gm.group_id", "gm.user_id", "gm.role", "gm.joined_at", "u.username").
		From("group_members gm").
		Join("users u ON u.id = gm.user_id")
}

// listQuery lists memberships, optionally for one group
func (r *GroupMemberRepository) listQuery(groupID *int64) squirrel.SelectBuilder {
	q := r.selectQuery().OrderBy("gm.id ASC")
	if groupID != nil {
		q = q.Where(squirrel.Eq{"gm.group_id": *groupID})
	}
	return q
}

func scanMember(row scanner) (*models.GroupMember, error) {
	var m models.GroupMember
	if err := row.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedAt, &m.Username); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns memberships, all of them or those of one group
func (r *GroupMemberRepository) List(ctx context.Context, groupID *int64) ([]*models.GroupMember, error) {
	sql, args, err := r.listQuery(groupID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list group members")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	members := make([]*models.GroupMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}
	return members, nil
}

// GetByID retrieves a membership by its own ID
func (r *GroupMemberRepository) GetByID(ctx context.Context, id int64) (*models.GroupMember, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"gm.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	m, err := scanMember(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving group member: %w", err)
	}
	return m, nil
}

// Add inserts a membership. The unique (group_id, user_id) constraint settles
// concurrent duplicates.
func (r *GroupMemberRepository) Add(ctx context.Context, m *models.GroupMember) error {
	sql, args, err := psql.Insert("group_members").
		Columns("group_id", "user_id", "role").
		Values(m.GroupID, m.UserID, string(m.Role)).
		Suffix("RETURNING id, joined_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.JoinedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "group_members_group_user_key"):
			return apperrors.ErrMemberAlreadyAdded
		case dberrors.IsForeignKeyError(err, ""):
			// constraint names follow <table>_<column>_fkey
			if strings.Contains(dberrors.ConstraintName(err), "group_id") {
				return apperrors.ErrGroupNotFound
			}
			return apperrors.ErrUserNotFound
		case dberrors.IsCheckConstraintError(err, ""):
			return fmt.Errorf("%w: invalid member role", apperrors.ErrValidationFailed)
		}
		logger.Error().Err(err).Msg("Failed to add group member")
		return fmt.Errorf("error adding group member: %w", err)
	}
	return nil
}

// UpdateRole changes a member's role
func (r *GroupMemberRepository) UpdateRole(ctx context.Context, id int64, role models.MemberRole) error {
	sql, args, err := psql.Update("group_members").
		Set("role", string(role)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Remove deletes a membership
func (r *GroupMemberRepository) Remove(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("group_members").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}
