// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/middleware"
)

// parseID reads a positive int64 path parameter, answering 400 when it is malformed
func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleInvalidID(ctx, name)
		return 0, false
	}
	return id, true
}

// currentUserID returns the caller set by the JWT middleware
func currentUserID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
	}
	return id, ok
}

func abortUnauthenticated(ctx *gin.Context) {
	detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
