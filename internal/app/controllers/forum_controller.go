package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
	"github.com/yigit/mentorhub/internal/pkg/helpers"
)

// ForumController handles forum threads and replies
type ForumController struct {
	forumService services.ForumService
	logger       zerolog.Logger
}

// NewForumController creates a new ForumController
func NewForumController(forumService services.ForumService, logger zerolog.Logger) *ForumController {
	return &ForumController{
		forumService: forumService,
		logger:       logger,
	}
}

// ListThreads lists threads, newest first
// @Summary List forum threads
// @Tags forum
// @Produce json
// @Success 200 {array} models.ForumThread
// @Router /forum/threads [get]
func (c *ForumController) ListThreads(ctx *gin.Context) {
	threads, err := c.forumService.ListThreads(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, threads)
}

// GetThread returns a thread with its replies
// @Summary Get forum thread
// @Tags forum
// @Produce json
// @Param id path int true "Thread ID" Format(int64) minimum(1)
// @Success 200 {object} dto.ThreadDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Router /forum/thread/{id} [get]
func (c *ForumController) GetThread(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	thread, err := c.forumService.GetThread(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewThreadDetailResponse(thread))
}

// CreateThread opens a thread as the caller
// @Summary Create forum thread
// @Tags forum
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateThreadRequest true "Thread"
// @Success 201 {object} dto.ThreadCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /forum/thread [post]
func (c *ForumController) CreateThread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateThreadRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	thread, err := c.forumService.CreateThread(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ThreadCreatedResponse{
		Message:  "Thread created successfully",
		ThreadID: thread.ID,
	})
}

// DeleteThread deletes a thread and its replies
// @Summary Delete forum thread
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Thread ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Router /forum/thread/{id} [delete]
func (c *ForumController) DeleteThread(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.forumService.DeleteThread(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Thread deleted successfully"})
}

// ListReplies lists replies, optionally of one thread
// @Summary List forum replies
// @Tags forum
// @Produce json
// @Param thread_id query int false "Thread ID"
// @Success 200 {array} models.ForumReply
// @Failure 400 {object} dto.ErrorResponse "Invalid thread_id"
// @Router /forum/reply [get]
func (c *ForumController) ListReplies(ctx *gin.Context) {
	threadID, ok, err := helpers.QueryInt64(ctx, "thread_id")
	if err != nil {
		middleware.HandleInvalidID(ctx, "thread_id")
		return
	}

	var filter *int64
	if ok {
		filter = &threadID
	}
	replies, err := c.forumService.ListReplies(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, replies)
}

// GetReply returns one reply
// @Summary Get forum reply
// @Tags forum
// @Produce json
// @Param id path int true "Reply ID" Format(int64) minimum(1)
// @Success 200 {object} models.ForumReply
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Router /forum/reply/{id} [get]
func (c *ForumController) GetReply(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	reply, err := c.forumService.GetReply(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reply)
}

// CreateReply replies to a thread as the caller
// @Summary Reply to a thread
// @Tags forum
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReplyRequest true "Reply"
// @Success 201 {object} dto.ReplyCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Router /forum/reply [post]
func (c *ForumController) CreateReply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	reply, err := c.forumService.CreateReply(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ReplyCreatedResponse{
		Message: "Reply added successfully",
		ReplyID: reply.ID,
	})
}

// DeleteReply deletes a reply
// @Summary Delete forum reply
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reply ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Router /forum/reply/{id} [delete]
func (c *ForumController) DeleteReply(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.forumService.DeleteReply(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Reply deleted successfully"})
}
