package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
)

// GroupController handles groups and their members
type GroupController struct {
	groupService  services.GroupService
	memberService services.MemberService
	logger        zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, memberService services.MemberService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService:  groupService,
		memberService: memberService,
		logger:        logger,
	}
}

// ListGroups lists groups with their member counts
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	groups, err := c.groupService.ListGroups(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, groups)
}

// GetGroup returns one group
// @Summary Get group by ID
// @Tags groups
// @Produce json
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} models.Group
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroup(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, group)
}

// CreateGroup creates a group owned by the caller
// @Summary Create group
// @Description created_by is the authenticated user
// @Tags groups
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group"
// @Success 201 {object} dto.GroupCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	creatorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	group, err := c.groupService.CreateGroup(ctx.Request.Context(), creatorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.GroupCreatedResponse{
		Message: "Group created successfully",
		GroupID: group.ID,
	})
}

// UpdateGroup renames a group or changes its description
// @Summary Update group
// @Tags groups
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Param request body dto.UpdateGroupRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.groupService.UpdateGroup(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group updated successfully"})
}

// DeleteGroup deletes a group and its memberships
// @Summary Delete group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group deleted successfully"})
}

// ListMembers lists memberships, optionally of one group
// @Summary List group members
// @Tags members
// @Produce json
// @Param group_id query int false "Group ID"
// @Success 200 {array} models.GroupMember
// @Failure 400 {object} dto.ErrorResponse "Invalid group_id"
// @Router /members [get]
func (c *GroupController) ListMembers(ctx *gin.Context) {
	var filter dto.MemberFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	members, err := c.memberService.ListMembers(ctx.Request.Context(), filter.GroupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, members)
}

// GetMember returns one membership
// @Summary Get group member by ID
// @Tags members
// @Produce json
// @Param id path int true "Membership ID" Format(int64) minimum(1)
// @Success 200 {object} models.GroupMember
// @Failure 404 {object} dto.ErrorResponse "Group member not found"
// @Router /members/{id} [get]
func (c *GroupController) GetMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	member, err := c.memberService.GetMember(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, member)
}

// AddMember adds a user to a group
// @Summary Add group member
// @Description The user id travels as "id"; role defaults to Member.
// @Tags members
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddMemberRequest true "Membership"
// @Success 201 {object} dto.MemberCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Group or user not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /members [post]
func (c *GroupController) AddMember(ctx *gin.Context) {
	var req dto.AddMemberRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	member, err := c.memberService.AddMember(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MemberCreatedResponse{
		Message:       "Member added successfully",
		GroupMemberID: member.ID,
	})
}

// UpdateMember changes a member's role
// @Summary Update member role
// @Description A missing role resets the member to Member.
// @Tags members
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID" Format(int64) minimum(1)
// @Param request body dto.UpdateMemberRequest false "Role"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 404 {object} dto.ErrorResponse "Group member not found"
// @Router /members/{id} [put]
func (c *GroupController) UpdateMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBind(&req); err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
	}

	if err := c.memberService.UpdateMemberRole(ctx.Request.Context(), id, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Member role updated successfully"})
}

// RemoveMember removes a membership
// @Summary Remove group member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Group member not found"
// @Router /members/{id} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.memberService.RemoveMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Member removed successfully"})
}
