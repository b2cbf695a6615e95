package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
)

// StatsController serves the dashboard aggregations
type StatsController struct {
	statsService services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Overview returns platform totals
// @Summary Platform overview
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.StatsOverview}
// @Router /stats/overview [get]
func (c *StatsController) Overview(ctx *gin.Context) {
	overview, err := c.statsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(overview, "Overview retrieved successfully"))
}

// TopMentors ranks mentors by Active and Completed mentorships
// @Summary Top mentors
// @Tags stats
// @Produce json
// @Param limit query int false "Max rows (default 5, max 50)"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.TopMentor}
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Router /stats/top-mentors [get]
func (c *StatsController) TopMentors(ctx *gin.Context) {
	var q dto.StatsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	mentors, err := c.statsService.TopMentors(ctx.Request.Context(), q.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(mentors, "Top mentors retrieved successfully"))
}

// RecentActivity lists the latest mentorship changes
// @Summary Recent activity
// @Tags stats
// @Produce json
// @Param user_id query int false "Only mentorships involving this user"
// @Param limit query int false "Max rows (default 5)"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ActivityItem}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /stats/recent-activity [get]
func (c *StatsController) RecentActivity(ctx *gin.Context) {
	var q dto.StatsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	items, err := c.statsService.RecentActivity(ctx.Request.Context(), q.UserID, q.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(items, "Recent activity retrieved successfully"))
}
