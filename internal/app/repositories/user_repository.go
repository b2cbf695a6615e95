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
	database "github.com/yigit/mentorhub/internal/db"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/dberrors"
	"github.com/yigit/mentorhub/internal/pkg/logger"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "username", "password_hash", "role", "status",
	"profile_image", "job_title", "skills", "bio", "last_active_at", "created_at", "updated_at",
}

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.Status,
		&u.ProfileImage, &u.JobTitle, &u.Skills, &u.Bio, &u.LastActiveAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// listQuery builds the filtered user listing, oldest first
func (r *UserRepository) listQuery(filter UserFilter) squirrel.SelectBuilder {
	q := psql.Select(userColumns...).From("users").OrderBy("id ASC")

	if filter.Role != nil {
		q = q.Where(squirrel.Eq{"role": string(*filter.Role)})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"first_name || ' ' || last_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"username": pattern},
		})
	}
	return q
}

// List returns users matching filter in insertion order
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	sql, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list users")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) getBy(ctx context.Context, pred squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// emailMatch uses the expression covered by users_email_lower_key
func emailMatch(email string) squirrel.Sqlizer {
	return squirrel.Expr("lower(email) = lower(?)", email)
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, emailMatch(email))
}

// insertQuery builds the INSERT for a new user
func (r *UserRepository) insertQuery(u *models.User) squirrel.InsertBuilder {
	return psql.Insert("users").
		Columns("first_name", "last_name", "email", "username", "password_hash", "role", "status",
			"profile_image", "job_title", "skills", "bio").
		Values(u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, string(u.Role), string(u.Status),
			u.ProfileImage, u.JobTitle, u.Skills, u.Bio).
		Suffix("RETURNING id, created_at, updated_at")
}

// Create inserts a user and fills in its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	sql, args, err := r.insertQuery(u).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

// updateQuery builds a partial UPDATE; only the patch's columns are set
func (r *UserRepository) updateQuery(id int64, patch models.UserPatch) squirrel.UpdateBuilder {
	return psql.Update("users").
		SetMap(patch.Columns()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
}

// Update applies patch to the user
func (r *UserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	if len(patch.Columns()) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidationFailed)
	}

	sql, args, err := r.updateQuery(id, patch).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapUserWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user unless they are in an Active mentorship. The check and
// the delete share a transaction with the user row locked.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking user: %w", err)
		}

		var active bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM mentorships
				WHERE (mentor_id = $1 OR mentee_id = $1) AND status = $2
			)`, id, string(models.MentorshipActive)).Scan(&active)
		if err != nil {
			return fmt.Errorf("error checking mentorships: %w", err)
		}
		if active {
			return apperrors.ErrUserHasActiveMentorship
		}

		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			logger.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

// TouchLastActive stamps last_active_at with the current time
func (r *UserRepository) TouchLastActive(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE users SET last_active_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last active time: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ExistsByRole reports whether any user holds role
func (r *UserRepository) ExistsByRole(ctx context.Context, role models.RoleType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, string(role)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}
	return exists, nil
}

// mapUserWriteError turns constraint violations into domain errors
func mapUserWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "users_email_lower_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
		return apperrors.ErrUsernameAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, ""):
		return apperrors.ErrResourceAlreadyExists
	case dberrors.IsCheckConstraintError(err, ""):
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, dberrors.ConstraintName(err))
	}
	logger.Error().Err(err).Msg("User write failed")
	return fmt.Errorf("error writing user: %w", err)
}
