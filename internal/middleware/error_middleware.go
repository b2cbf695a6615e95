package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
)

// apiError is one row of the sentinel to response mapping
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first errors.Is match wins.
var apiErrors = []apiError{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidMentorshipStatus, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid mentorship status"},
	{apperrors.ErrSelfMentorship, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Mentor and mentee must be different users"},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"},
	{apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeRevokedToken, "Token revoked"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},

	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrMentorshipNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Mentorship not found"},
	{apperrors.ErrGroupNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found"},
	{apperrors.ErrMemberNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group member not found"},
	{apperrors.ErrThreadNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Thread not found"},
	{apperrors.ErrReplyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Reply not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrUsernameAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists"},
	{apperrors.ErrMemberAlreadyAdded, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User is already a member of this group"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Unknown errors are logged and reported as a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		// validation and conflict errors carry a caller-facing reason
		if e.status == http.StatusBadRequest || e.status == http.StatusConflict {
			var custom *apperrors.CustomError
			if errors.As(err, &custom) && custom.Message != "" {
				detail = detail.WithDetails(custom.Message)
			}
		}
		c.AbortWithStatusJSON(e.status, dto.NewErrorResponse(detail))
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")

	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// HandleBindError renders a request binding failure as 400
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// HandleInvalidID renders a malformed path id as 400
func HandleInvalidID(c *gin.Context, name string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+name).WithField(name)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// NotFoundHandler answers unknown routes in the standard error shape
func NotFoundHandler(c *gin.Context) {
	detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").
		WithDetails(c.Request.Method + " " + c.Request.URL.Path)
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
}
