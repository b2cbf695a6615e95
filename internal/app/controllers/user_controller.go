package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
)

const profileImageField = "profile_image"

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers lists users
// @Summary List users
// @Description Lists users ordered by id. Filters are combined with AND; search matches names, email and username.
// @Tags users
// @Produce json
// @Param role query string false "Role" Enums(Admin, Mentor, Mentee, Member, Moderator)
// @Param status query string false "Status" Enums(Active, Inactive, Banned)
// @Param search query string false "Free text search"
// @Success 200 {array} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	users, err := c.userService.ListUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID retrieves user information by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// CreateUser creates a user
// @Summary Create user
// @Description Accepts JSON or multipart form. A multipart request may carry a profile_image file.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateUserRequest true "User fields"
// @Param profile_image formData file false "Profile image"
// @Success 201 {object} dto.UserCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create user payload")
		middleware.HandleBindError(ctx, err)
		return
	}

	image, err := optionalFile(ctx, profileImageField)
	if err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserCreatedResponse{
		Message: "User added successfully",
		UserID:  user.ID,
	})
}

// UpdateUser updates a user
// @Summary Update user
// @Description Partial update. The password is re-hashed only when supplied; a new profile_image replaces the old file.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Param profile_image formData file false "Profile image"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	image, err := optionalFile(ctx, profileImageField)
	if err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.userService.UpdateUser(ctx.Request.Context(), id, &req, image); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User updated successfully"})
}

// DeleteUser deletes a user
// @Summary Delete user
// @Description Hard delete. Refused while the user has an Active mentorship.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User has active mentorships"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// optionalFile returns the uploaded file under field, or nil when the request
// carries none.
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}
