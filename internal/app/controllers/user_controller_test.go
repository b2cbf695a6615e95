package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
)

func userRouter(svc *MockUserService) *gin.Engine {
	c := NewUserController(svc, zerolog.Nop())
	r := newRouter()
	r.GET("/api/users", c.ListUsers)
	r.GET("/api/users/:id", c.GetUserByID)
	r.POST("/api/users", c.CreateUser)
	r.PUT("/api/users/:id", asUser(testUserID), c.UpdateUser)
	r.DELETE("/api/users/:id", asUser(testUserID), c.DeleteUser)
	return r
}

func TestListUsers_PassesFilters(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListUsers", mock.Anything, mock.MatchedBy(func(f *dto.UserFilterRequest) bool {
		return f.Role != nil && *f.Role == "Mentor" && f.Status != nil && *f.Status == "Active" && f.Search == nil
	})).Return([]*models.User{{ID: 1, Username: "ana", Role: models.RoleMentor}}, nil)

	w := doJSON(t, userRouter(svc), http.MethodGet, "/api/users?role=Mentor&status=Active", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"ana"`)
	assert.NotContains(t, w.Body.String(), "password")
	svc.AssertExpectations(t)
}

func TestListUsers_RejectsUnknownRole(t *testing.T) {
	svc := new(MockUserService)

	w := doJSON(t, userRouter(svc), http.MethodGet, "/api/users?role=Wizard", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		setup  func(*MockUserService)
		status int
		code   string
	}{
		{
			name: "found",
			path: "/api/users/3",
			setup: func(s *MockUserService) {
				s.On("GetUserByID", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/users/99",
			setup: func(s *MockUserService) {
				s.On("GetUserByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrUserNotFound)
			},
			status: http.StatusNotFound,
			code:   string(dto.ErrorCodeResourceNotFound),
		},
		{
			name:   "malformed id",
			path:   "/api/users/abc",
			setup:  func(*MockUserService) {},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			tt.setup(svc)

			w := doJSON(t, userRouter(svc), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, w))
			}
		})
	}
}

func TestCreateUser_JSON(t *testing.T) {
	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, mock.MatchedBy(func(r *dto.CreateUserRequest) bool {
		return r.Email == "ana@example.com" && r.Username == "ana"
	}), (*multipart.FileHeader)(nil)).Return(&models.User{ID: 12}, nil)

	w := doJSON(t, userRouter(svc), http.MethodPost, "/api/users", map[string]string{
		"first_name": "Ana", "last_name": "Reyes", "email": "ana@example.com",
		"username": "ana", "password": "pw",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User added successfully", body["message"])
	assert.EqualValues(t, 12, body["user_id"])
}

func TestCreateUser_MissingFieldIsRejectedBeforeService(t *testing.T) {
	svc := new(MockUserService)

	w := doJSON(t, userRouter(svc), http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	svc := new(MockUserService)

	w := doRaw(userRouter(svc), http.MethodPost, "/api/users", "application/json", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailAlreadyExists)

	w := doJSON(t, userRouter(svc), http.MethodPost, "/api/users", map[string]string{
		"first_name": "Ana", "last_name": "Reyes", "email": "ana@example.com",
		"username": "ana", "password": "pw",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(dto.ErrorCodeResourceAlreadyExists), errorCode(t, w))
}

func TestCreateUser_MultipartWithImage(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"first_name": "Ana", "last_name": "Reyes", "email": "ana@example.com",
		"username": "ana", "password": "pw", "role": "Mentor",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("profile_image", "me.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, mw.Close())

	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, mock.MatchedBy(func(r *dto.CreateUserRequest) bool {
		return r.Role != nil && *r.Role == "Mentor"
	}), mock.MatchedBy(func(fh *multipart.FileHeader) bool {
		return fh != nil && fh.Filename == "me.png"
	})).Return(&models.User{ID: 4}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	userRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdateUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("UpdateUser", mock.Anything, int64(5), mock.MatchedBy(func(r *dto.UpdateUserRequest) bool {
		return r.Bio != nil && *r.Bio == "hi" && r.Password == nil
	}), (*multipart.FileHeader)(nil)).Return(nil)

	w := doJSON(t, userRouter(svc), http.MethodPut, "/api/users/5", map[string]string{"bio": "hi"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User updated successfully", decode(t, w)["message"])
}

func TestUpdateUser_NoFields(t *testing.T) {
	svc := new(MockUserService)
	svc.On("UpdateUser", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return(apperrors.NewValidationError("no fields to update"))

	w := doJSON(t, userRouter(svc), http.MethodPut, "/api/users/5", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no fields to update")
}

func TestDeleteUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("DeleteUser", mock.Anything, int64(5)).Return(nil)
	svc.On("DeleteUser", mock.Anything, int64(6)).Return(apperrors.ErrUserHasActiveMentorship)

	r := userRouter(svc)
	w := doJSON(t, r, http.MethodDelete, "/api/users/5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodDelete, "/api/users/6", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
