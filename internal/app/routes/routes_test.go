package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/mentorhub/internal/app/controllers"
	"github.com/yigit/mentorhub/internal/middleware"
	"github.com/yigit/mentorhub/internal/pkg/auth"
	"github.com/yigit/mentorhub/internal/pkg/websocket"
)

// Services are left nil: every request below is answered before a service is reached.
func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	lgr := zerolog.Nop()
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})

	r := gin.New()
	SetupRouter(r, Controllers{
		Auth:       controllers.NewAuthController(nil, lgr),
		User:       controllers.NewUserController(nil, lgr),
		Mentorship: controllers.NewMentorshipController(nil, lgr),
		Group:      controllers.NewGroupController(nil, nil, lgr),
		Forum:      controllers.NewForumController(nil, lgr),
		ForumFeed:  websocket.NewHandler(websocket.NewHub(lgr), "", lgr),
		Stats:      controllers.NewStatsController(nil),
		Health:     controllers.NewHealthController(nil, lgr),
	}, middleware.NewAuthMiddleware(jwt, nil, lgr))
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestWritesRequireAuthentication(t *testing.T) {
	r := testEngine()
	protected := []struct{ method, path string }{
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/mentorships"},
		{http.MethodPost, "/api/mentorships/apply"},
		{http.MethodPut, "/api/mentorships/1"},
		{http.MethodDelete, "/api/mentorships/1"},
		{http.MethodPost, "/api/groups"},
		{http.MethodPut, "/api/groups/1"},
		{http.MethodDelete, "/api/groups/1"},
		{http.MethodPost, "/api/members"},
		{http.MethodPut, "/api/members/1"},
		{http.MethodDelete, "/api/members/1"},
		{http.MethodPost, "/api/forum/thread"},
		{http.MethodDelete, "/api/forum/thread/1"},
		{http.MethodPost, "/api/forum/reply"},
		{http.MethodDelete, "/api/forum/reply/1"},
	}
	for _, p := range protected {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, p.method, p.path).Code)
		})
	}
}

func TestPublicReadsAreRouted(t *testing.T) {
	r := testEngine()
	// malformed ids fail in the handler, proving the route exists and is public
	for _, path := range []string{
		"/api/users/x",
		"/api/mentorships/x",
		"/api/mentorships/user/x",
		"/api/groups/x",
		"/api/members/x",
		"/api/forum/thread/x",
		"/api/forum/reply/x",
		"/api/forum/ws?thread_id=x",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, path).Code, path)
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	r := testEngine()

	w := serve(r, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/faculties").Code)
}
