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

// ForumRepository handles database operations for forum threads and replies
type ForumRepository struct {
	db *pgxpool.Pool
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) threadQuery() squirrel.SelectBuilder {
	return psql.Select("t.id", "t.title", "t.content", "t.created_by", "u.username", "t.group_id", "t.created_at").
		From("forum_threads t").
		Join("users u ON u.id = t.created_by")
}

// replyQuery lists replies oldest first, optionally under one thread
func (r *ForumRepository) replyQuery(threadID *int64) squirrel.SelectBuilder {
	q := psql.Select("r.id", "r.thread_id", "r.user_id", "u.username", "r.content", "r.created_at").
		From("forum_replies r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.created_at ASC", "r.id ASC")
	if threadID != nil {
		q = q.Where(squirrel.Eq{"r.thread_id": *threadID})
	}
	return q
}

func scanThread(row scanner) (*models.ForumThread, error) {
	var t models.ForumThread
	if err := row.Scan(&t.ID, &t.Title, &t.Content, &t.CreatedBy, &t.CreatedByName, &t.GroupID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanReply(row scanner) (*models.ForumReply, error) {
	var rp models.ForumReply
	if err := row.Scan(&rp.ID, &rp.ThreadID, &rp.UserID, &rp.UserName, &rp.Content, &rp.CreatedAt); err != nil {
		return nil, err
	}
	return &rp, nil
}

// ListThreads returns all threads, newest first
func (r *ForumRepository) ListThreads(ctx context.Context) ([]*models.ForumThread, error) {
	sql, args, err := r.threadQuery().OrderBy("t.created_at DESC", "t.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list threads")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	threads := make([]*models.ForumThread, 0)
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating threads: %w", err)
	}
	return threads, nil
}

// GetThread retrieves the thread row; replies are loaded separately with ListReplies
func (r *ForumRepository) GetThread(ctx context.Context, id int64) (*models.ForumThread, error) {
	sql, args, err := r.threadQuery().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	t, err := scanThread(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, fmt.Errorf("error retrieving thread: %w", err)
	}
	return t, nil
}

// CreateThread inserts a thread and fills in its ID and timestamp
func (r *ForumRepository) CreateThread(ctx context.Context, t *models.ForumThread) error {
	sql, args, err := psql.Insert("forum_threads").
		Columns("title", "content", "created_by", "group_id").
		Values(t.Title, t.Content, t.CreatedBy, t.GroupID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			if strings.Contains(dberrors.ConstraintName(err), "group_id") {
				return apperrors.ErrGroupNotFound
			}
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Failed to create thread")
		return fmt.Errorf("error creating thread: %w", err)
	}
	return nil
}

// DeleteThread removes a thread; its replies are removed by cascade
func (r *ForumRepository) DeleteThread(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("forum_threads").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrThreadNotFound
	}
	return nil
}

// ListReplies returns replies, all of them or those under one thread
func (r *ForumRepository) ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error) {
	sql, args, err := r.replyQuery(threadID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list replies")
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	replies := make([]*models.ForumReply, 0)
	for rows.Next() {
		rp, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reply: %w", err)
		}
		replies = append(replies, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating replies: %w", err)
	}
	return replies, nil
}

// GetReply retrieves a single reply
func (r *ForumRepository) GetReply(ctx context.Context, id int64) (*models.ForumReply, error) {
	sql, args, err := r.replyQuery(nil).Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rp, err := scanReply(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReplyNotFound
		}
		return nil, fmt.Errorf("error retrieving reply: %w", err)
	}
	return rp, nil
}

// CreateReply inserts a reply and fills in its ID and timestamp
func (r *ForumRepository) CreateReply(ctx context.Context, rp *models.ForumReply) error {
	sql, args, err := psql.Insert("forum_replies").
		Columns("thread_id", "user_id", "content").
		Values(rp.ThreadID, rp.UserID, rp.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rp.ID, &rp.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			if strings.Contains(dberrors.ConstraintName(err), "thread_id") {
				return apperrors.ErrThreadNotFound
			}
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Failed to create reply")
		return fmt.Errorf("error creating reply: %w", err)
	}
	return nil
}

// DeleteReply removes a reply
func (r *ForumRepository) DeleteReply(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("forum_replies").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReplyNotFound
	}
	return nil
}
