package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/services"
	"github.com/yigit/mentorhub/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidation()
}

// --- service mocks ---

type MockUserService struct{ mock.Mock }

func (m *MockUserService) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest, image *multipart.FileHeader) (*models.User, error) {
	args := m.Called(ctx, req, image)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest, image *multipart.FileHeader) error {
	return m.Called(ctx, id, req, image).Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(*services.LoginResult)
	return r, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return m.Called(ctx, jti, expiresAt).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type MockMentorshipService struct{ mock.Mock }

func (m *MockMentorshipService) ListMentorships(ctx context.Context) ([]*models.Mentorship, error) {
	args := m.Called(ctx)
	ms, _ := args.Get(0).([]*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) ListByUser(ctx context.Context, userID int64) ([]*models.Mentorship, error) {
	args := m.Called(ctx, userID)
	ms, _ := args.Get(0).([]*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) GetMentorship(ctx context.Context, id int64) (*models.Mentorship, error) {
	args := m.Called(ctx, id)
	ms, _ := args.Get(0).(*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) CreateMentorship(ctx context.Context, req *dto.CreateMentorshipRequest) (*models.Mentorship, error) {
	args := m.Called(ctx, req)
	ms, _ := args.Get(0).(*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) ApplyForMentorship(ctx context.Context, menteeID int64, req *dto.ApplyMentorshipRequest) (*models.Mentorship, error) {
	args := m.Called(ctx, menteeID, req)
	ms, _ := args.Get(0).(*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) UpdateMentorship(ctx context.Context, id int64, req *dto.UpdateMentorshipRequest) (*models.Mentorship, error) {
	args := m.Called(ctx, id, req)
	ms, _ := args.Get(0).(*models.Mentorship)
	return ms, args.Error(1)
}

func (m *MockMentorshipService) DeleteMentorship(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockGroupService struct{ mock.Mock }

func (m *MockGroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	args := m.Called(ctx)
	g, _ := args.Get(0).([]*models.Group)
	return g, args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, creatorID int64, req *dto.CreateGroupRequest) (*models.Group, error) {
	args := m.Called(ctx, creatorID, req)
	g, _ := args.Get(0).(*models.Group)
	return g, args.Error(1)
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, id int64, req *dto.UpdateGroupRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMemberService struct{ mock.Mock }

func (m *MockMemberService) ListMembers(ctx context.Context, groupID *int64) ([]*models.GroupMember, error) {
	args := m.Called(ctx, groupID)
	gm, _ := args.Get(0).([]*models.GroupMember)
	return gm, args.Error(1)
}

func (m *MockMemberService) GetMember(ctx context.Context, id int64) (*models.GroupMember, error) {
	args := m.Called(ctx, id)
	gm, _ := args.Get(0).(*models.GroupMember)
	return gm, args.Error(1)
}

func (m *MockMemberService) AddMember(ctx context.Context, req *dto.AddMemberRequest) (*models.GroupMember, error) {
	args := m.Called(ctx, req)
	gm, _ := args.Get(0).(*models.GroupMember)
	return gm, args.Error(1)
}

func (m *MockMemberService) UpdateMemberRole(ctx context.Context, id int64, role *string) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockMemberService) RemoveMember(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockForumService struct{ mock.Mock }

func (m *MockForumService) ListThreads(ctx context.Context) ([]*models.ForumThread, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]*models.ForumThread)
	return t, args.Error(1)
}

func (m *MockForumService) GetThread(ctx context.Context, id int64) (*models.ForumThread, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.ForumThread)
	return t, args.Error(1)
}

func (m *MockForumService) CreateThread(ctx context.Context, userID int64, req *dto.CreateThreadRequest) (*models.ForumThread, error) {
	args := m.Called(ctx, userID, req)
	t, _ := args.Get(0).(*models.ForumThread)
	return t, args.Error(1)
}

func (m *MockForumService) DeleteThread(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockForumService) ListReplies(ctx context.Context, threadID *int64) ([]*models.ForumReply, error) {
	args := m.Called(ctx, threadID)
	r, _ := args.Get(0).([]*models.ForumReply)
	return r, args.Error(1)
}

func (m *MockForumService) GetReply(ctx context.Context, id int64) (*models.ForumReply, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.ForumReply)
	return r, args.Error(1)
}

func (m *MockForumService) CreateReply(ctx context.Context, userID int64, req *dto.CreateReplyRequest) (*models.ForumReply, error) {
	args := m.Called(ctx, userID, req)
	r, _ := args.Get(0).(*models.ForumReply)
	return r, args.Error(1)
}

func (m *MockForumService) DeleteReply(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatsService struct{ mock.Mock }

func (m *MockStatsService) Invalidate(ctx context.Context) { m.Called(ctx) }

func (m *MockStatsService) Overview(ctx context.Context) (*dto.StatsOverview, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).(*dto.StatsOverview)
	return o, args.Error(1)
}

func (m *MockStatsService) TopMentors(ctx context.Context, limit int) ([]dto.TopMentor, error) {
	args := m.Called(ctx, limit)
	t, _ := args.Get(0).([]dto.TopMentor)
	return t, args.Error(1)
}

func (m *MockStatsService) RecentActivity(ctx context.Context, userID *int64, limit int) ([]dto.ActivityItem, error) {
	args := m.Called(ctx, userID, limit)
	a, _ := args.Get(0).([]dto.ActivityItem)
	return a, args.Error(1)
}

// --- request helpers ---

const testUserID int64 = 7

// asUser stands in for the JWT middleware
func asUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextTokenID, "jti-1")
		c.Set(middleware.ContextExpiresAt, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		c.Next()
	}
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.NoRoute(middleware.NotFoundHandler)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	code, _ := detail["code"].(string)
	return code
}
