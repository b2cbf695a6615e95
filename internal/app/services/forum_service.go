package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/websocket"
)

// ForumService manages forum threads and their replies
type ForumService interface {
	ListThreads(ctx context.Context) ([]*models.ForumThread, error)
	GetThread(ctx context.Context, id int64) (*models.ForumThread, error)
	CreateThread(ctx context.Context, userID int64, req *dto.CreateThreadRequest) (*models.ForumThread, error)
	DeleteThread(ctx context.Context, id int64) error
	ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error)
	GetReply(ctx context.Context, id int64) (*models.ForumReply, error)
	CreateReply(ctx context.Context, userID int64, req *dto.CreateReplyRequest) (*models.ForumReply, error)
	DeleteReply(ctx context.Context, id int64) error
}

type forumServiceImpl struct {
	forumRepo repositories.IForumRepository
	stats     StatsInvalidator
	events    ForumEventPublisher
	logger    zerolog.Logger
}

// NewForumService creates a new ForumService. stats and events may be nil.
func NewForumService(
	forumRepo repositories.IForumRepository,
	stats StatsInvalidator,
	events ForumEventPublisher,
	logger zerolog.Logger,
) ForumService {
	return &forumServiceImpl{
		forumRepo: forumRepo,
		stats:     invalidatorOrNoop(stats),
		events:    publisherOrNoop(events),
		logger:    logger,
	}
}

func (s *forumServiceImpl) ListThreads(ctx context.Context) ([]*models.ForumThread, error) {
	threads, err := s.forumRepo.ListThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing threads: %w", err)
	}
	return threads, nil
}

// GetThread returns the thread with its replies, oldest reply first
func (s *forumServiceImpl) GetThread(ctx context.Context, id int64) (*models.ForumThread, error) {
	thread, err := s.forumRepo.GetThread(ctx, id)
	if err != nil {
		return nil, err
	}

	replies, err := s.forumRepo.ListReplies(ctx, &id)
	if err != nil {
		return nil, fmt.Errorf("error listing replies: %w", err)
	}
	thread.Replies = replies
	if thread.Replies == nil {
		thread.Replies = []*models.ForumReply{}
	}
	return thread, nil
}

func (s *forumServiceImpl) CreateThread(ctx context.Context, userID int64, req *dto.CreateThreadRequest) (*models.ForumThread, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperrors.NewValidationError("title and content are required")
	}

	thread := &models.ForumThread{
		Title:     title,
		Content:   content,
		CreatedBy: userID,
		GroupID:   req.GroupID,
	}
	if err := s.forumRepo.CreateThread(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("threadID", thread.ID).Int64("userID", userID).Msg("Thread created")
	s.stats.Invalidate(ctx)
	s.events.Publish(websocket.Event{Type: websocket.EventThreadCreated, ThreadID: thread.ID, Data: thread})
	return thread, nil
}

// DeleteThread removes the thread and, through the FK, its replies
func (s *forumServiceImpl) DeleteThread(ctx context.Context, id int64) error {
	if err := s.forumRepo.DeleteThread(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("threadID", id).Msg("Thread deleted")
	s.stats.Invalidate(ctx)
	s.events.Publish(websocket.Event{Type: websocket.EventThreadDeleted, ThreadID: id})
	return nil
}

func (s *forumServiceImpl) ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error) {
	replies, err := s.forumRepo.ListReplies(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("error listing replies: %w", err)
	}
	return replies, nil
}

func (s *forumServiceImpl) GetReply(ctx context.Context, id int64) (*models.ForumReply, error) {
	return s.forumRepo.GetReply(ctx, id)
}

func (s *forumServiceImpl) CreateReply(ctx context.Context, userID int64, req *dto.CreateReplyRequest) (*models.ForumReply, error) {
	content := strings.TrimSpace(req.Content)
	if req.ThreadID <= 0 || content == "" {
		return nil, apperrors.NewValidationError("thread_id and content are required")
	}

	reply := &models.ForumReply{
		ThreadID: req.ThreadID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("replyID", reply.ID).Int64("threadID", reply.ThreadID).Msg("Reply created")
	s.stats.Invalidate(ctx)
	s.events.Publish(websocket.Event{Type: websocket.EventReplyCreated, ThreadID: reply.ThreadID, ReplyID: reply.ID, Data: reply})
	return reply, nil
}

func (s *forumServiceImpl) DeleteReply(ctx context.Context, id int64) error {
	if err := s.forumRepo.DeleteReply(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("replyID", id).Msg("Reply deleted")
	s.stats.Invalidate(ctx)
	s.events.Publish(websocket.Event{Type: websocket.EventReplyDeleted, ReplyID: id})
	return nil
}
