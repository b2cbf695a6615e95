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

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// selectQuery joins the creator name and aggregates membership counts per role
func (r *GroupRepository) selectQuery() squirrel.SelectBuilder {
	return psql.Select(
		"g.id", "g.group_name", "g.description", "g.created_by", "u.username",
		"g.created_at", "g.updated_at",
		"COUNT(gm.id)",
		"COUNT(gm.id) FILTER (WHERE gm.role = 'Member')",
		"COUNT(gm.id) FILTER (WHERE gm.role = 'Moderator')",
		"COUNT(gm.id) FILTER (WHERE gm.role = 'Owner')",
	).
		From("groups g").
		LeftJoin("users u ON u.id = g.created_by").
		LeftJoin("group_members gm ON gm.group_id = g.id").
		GroupBy("g.id", "u.username")
}

func scanGroup(row scanner) (*models.Group, error) {
	var g models.Group
	err := row.Scan(&g.ID, &g.GroupName, &g.Description, &g.CreatedBy, &g.CreatorName,
		&g.CreatedAt, &g.UpdatedAt,
		&g.TotalMembers, &g.MemberCount, &g.ModeratorCount, &g.OwnerCount)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns every group with its membership counts
func (r *GroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	sql, args, err := r.selectQuery().OrderBy("g.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list groups")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	g, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}
	return g, nil
}

// Create inserts a group and fills in its ID and timestamps
func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	sql, args, err := psql.Insert("groups").
		Columns("group_name", "description", "created_by").
		Values(g.GroupName, g.Description, g.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Failed to create group")
		return fmt.Errorf("error creating group: %w", err)
	}
	return nil
}

// updateQuery sets only the supplied columns
func (r *GroupRepository) updateQuery(id int64, groupName, description *string) squirrel.UpdateBuilder {
	q := psql.Update("groups").Set("updated_at", squirrel.Expr("now()")).Where(squirrel.Eq{"id": id})
	if groupName != nil {
		q = q.Set("group_name", *groupName)
	}
	if description != nil {
		q = q.Set("description", *description)
	}
	return q
}

// Update changes the group's name and/or description
func (r *GroupRepository) Update(ctx context.Context, id int64, groupName, description *string) error {
	sql, args, err := r.updateQuery(id, groupName, description).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}

// Delete removes a group; memberships go with it
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("groups").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}
