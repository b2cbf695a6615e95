package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
)

// MentorshipController handles mentorship endpoints
type MentorshipController struct {
	mentorshipService services.MentorshipService
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// ListMentorships lists every mentorship
// @Summary List mentorships
// @Tags mentorships
// @Produce json
// @Success 200 {array} models.Mentorship
// @Router /mentorships [get]
func (c *MentorshipController) ListMentorships(ctx *gin.Context) {
	items, err := c.mentorshipService.ListMentorships(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetMentorship returns one mentorship
// @Summary Get mentorship by ID
// @Tags mentorships
// @Produce json
// @Param id path int true "Mentorship ID" Format(int64) minimum(1)
// @Success 200 {object} models.Mentorship
// @Failure 404 {object} dto.ErrorResponse "Mentorship not found"
// @Router /mentorships/{id} [get]
func (c *MentorshipController) GetMentorship(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	m, err := c.mentorshipService.GetMentorship(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, m)
}

// ListByUser lists the mentorships a user takes part in
// @Summary List mentorships of a user
// @Description Matches the user as mentor or mentee
// @Tags mentorships
// @Produce json
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {array} models.Mentorship
// @Router /mentorships/user/{id} [get]
func (c *MentorshipController) ListByUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	items, err := c.mentorshipService.ListByUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// CreateMentorship creates a mentorship between two users
// @Summary Create mentorship
// @Description Status defaults to Active and start_date to today.
// @Tags mentorships
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipRequest true "Mentorship"
// @Success 201 {object} dto.MentorshipCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /mentorships [post]
func (c *MentorshipController) CreateMentorship(ctx *gin.Context) {
	var req dto.CreateMentorshipRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	m, err := c.mentorshipService.CreateMentorship(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MentorshipCreatedResponse{
		Message:      "Mentorship added successfully",
		MentorshipID: m.ID,
	})
}

// ApplyForMentorship lets the caller request a mentor
// @Summary Apply for mentorship
// @Description The caller becomes the mentee; the request starts Pending.
// @Tags mentorships
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyMentorshipRequest true "Application"
// @Success 201 {object} dto.MentorshipCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentorships/apply [post]
func (c *MentorshipController) ApplyForMentorship(ctx *gin.Context) {
	menteeID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ApplyMentorshipRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	m, err := c.mentorshipService.ApplyForMentorship(ctx.Request.Context(), menteeID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MentorshipCreatedResponse{
		Message:      "Application submitted successfully",
		MentorshipID: m.ID,
	})
}

// UpdateMentorship changes any subset of a mentorship's fields
// @Summary Update mentorship
// @Description Status must be one of Active, Pending, Completed, Reject.
// @Tags mentorships
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentorship ID" Format(int64) minimum(1)
// @Param request body dto.UpdateMentorshipRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status or no fields"
// @Failure 404 {object} dto.ErrorResponse "Mentorship not found"
// @Router /mentorships/{id} [put]
func (c *MentorshipController) UpdateMentorship(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMentorshipRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if _, err := c.mentorshipService.UpdateMentorship(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Mentorship updated successfully"})
}

// DeleteMentorship deletes a mentorship
// @Summary Delete mentorship
// @Tags mentorships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentorship ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Mentorship not found"
// @Router /mentorships/{id} [delete]
func (c *MentorshipController) DeleteMentorship(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.mentorshipService.DeleteMentorship(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Mentorship deleted successfully"})
}
