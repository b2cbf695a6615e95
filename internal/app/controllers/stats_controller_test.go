package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/app/models/dto"
)

func statsRouter(svc *MockStatsService) *gin.Engine {
	c := NewStatsController(svc)
	r := newRouter()
	r.GET("/api/stats/overview", c.Overview)
	r.GET("/api/stats/top-mentors", c.TopMentors)
	r.GET("/api/stats/recent-activity", c.RecentActivity)
	return r
}

func TestOverview(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("Overview", mock.Anything).Return(&dto.StatsOverview{
		TotalUsers:  4,
		UsersByRole: map[string]int{"Mentor": 2},
	}, nil)

	w := doJSON(t, statsRouter(svc), http.MethodGet, "/api/stats/overview", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 4, data["total_users"])
}

func TestTopMentors_LimitIsForwarded(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("TopMentors", mock.Anything, 3).Return([]dto.TopMentor{{UserID: 1, MentorshipCount: 2}}, nil)
	svc.On("TopMentors", mock.Anything, 0).Return([]dto.TopMentor{}, nil)
	r := statsRouter(svc)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/stats/top-mentors?limit=3", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/stats/top-mentors", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/stats/top-mentors?limit=-1", nil).Code)
	svc.AssertNumberOfCalls(t, "TopMentors", 2)
}

func TestRecentActivity_UserFilter(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("RecentActivity", mock.Anything, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 2
	}), 10).Return([]dto.ActivityItem{{MentorshipID: 1, Action: "Mentorship ongoing", TimeAgo: "3h ago"}}, nil)

	w := doJSON(t, statsRouter(svc), http.MethodGet, "/api/stats/recent-activity?user_id=2&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"time_ago":"3h ago"`)
}

func TestOverview_InternalErrorIsGeneric(t *testing.T) {
	svc := new(MockStatsService)
	svc.On("Overview", mock.Anything).Return(nil, errors.New("pq: relation does not exist"))

	w := doJSON(t, statsRouter(svc), http.MethodGet, "/api/stats/overview", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	ok := NewHealthController(fakePinger{}, zerolog.Nop())
	down := NewHealthController(fakePinger{err: errors.New("refused")}, zerolog.Nop())
	r := newRouter()
	r.GET("/ok", ok.Health)
	r.GET("/down", down.Health)

	w := doJSON(t, r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNoRoute(t *testing.T) {
	w := doJSON(t, newRouter(), http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
