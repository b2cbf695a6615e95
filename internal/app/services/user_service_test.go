package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/filestorage"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func newTestUserService(repo *MockUserRepository, storage *MockFileStorage, inv *MockInvalidator) *userServiceImpl {
	svc := NewUserService(repo, storage, inv, zerolog.Nop()).(*userServiceImpl)
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	return svc
}

func TestUserService_ListUsers_BuildsFilter(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo, new(MockFileStorage), nil)

	role := models.RoleMentor
	search := "ana"
	repo.On("List", mock.Anything, repositories.UserFilter{Role: &role, Search: &search}).
		Return([]*models.User{{ID: 1}}, nil)

	users, err := svc.ListUsers(context.Background(), &dto.UserFilterRequest{
		Role:   strPtr("Mentor"),
		Status: strPtr(""),
		Search: strPtr("  ana "),
	})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	repo.AssertExpectations(t)
}

func TestUserService_ListUsers_InvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo, new(MockFileStorage), nil)

	_, err := svc.ListUsers(context.Background(), &dto.UserFilterRequest{Role: strPtr("Wizard")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser(t *testing.T) {
	repo := new(MockUserRepository)
	inv := &MockInvalidator{}
	svc := newTestUserService(repo, new(MockFileStorage), inv)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 42 }).
		Return(nil)

	user, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "secret",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "hashed:secret", user.PasswordHash)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Nil(t, user.ProfileImage)
	assert.Equal(t, 1, inv.calls)
}

func TestUserService_CreateUser_RemovesImageWhenInsertFails(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockFileStorage)
	svc := newTestUserService(repo, storage, nil)

	fh := &multipart.FileHeader{Filename: "me.png"}
	url := "http://localhost:8080/uploads/profile_images/abc.png"
	storage.On("SaveFileWithPath", fh, filestorage.ProfileImageDir).Return(url, nil)
	storage.On("DeleteFile", url).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailAlreadyExists)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com", Username: "ana", Password: "secret",
	}, fh)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	storage.AssertExpectations(t)
}

func TestUserService_CreateUser_BlankFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo, new(MockFileStorage), nil)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstName: "  ", LastName: "Reyes", Email: "ana@example.com", Username: "ana", Password: "secret",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_ReplacesImage(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockFileStorage)
	svc := newTestUserService(repo, storage, nil)

	oldURL := "http://localhost:8080/uploads/profile_images/old.png"
	newURL := "http://localhost:8080/uploads/profile_images/new.png"
	fh := &multipart.FileHeader{Filename: "new.png"}

	repo.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7, ProfileImage: &oldURL}, nil)
	storage.On("SaveFileWithPath", fh, filestorage.ProfileImageDir).Return(newURL, nil)
	repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(p models.UserPatch) bool {
		return p.ProfileImage != nil && *p.ProfileImage == newURL &&
			p.JobTitle != nil && *p.JobTitle == "Engineer" && p.PasswordHash == nil
	})).Return(nil)
	storage.On("DeleteFile", oldURL).Return(nil)

	err := svc.UpdateUser(context.Background(), 7, &dto.UpdateUserRequest{
		JobTitle: strPtr("Engineer"),
		Password: strPtr(""),
	}, fh)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo, new(MockFileStorage), nil)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7}, nil)
	repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(p models.UserPatch) bool {
		return p.PasswordHash != nil && *p.PasswordHash == "hashed:new-secret"
	})).Return(nil)

	require.NoError(t, svc.UpdateUser(context.Background(), 7, &dto.UpdateUserRequest{Password: strPtr("new-secret")}, nil))
	repo.AssertExpectations(t)
}

func TestUserService_UpdateUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.UpdateUserRequest
		found   bool
		wantErr error
	}{
		{"unknown user", &dto.UpdateUserRequest{Bio: strPtr("x")}, false, apperrors.ErrUserNotFound},
		{"no fields", &dto.UpdateUserRequest{}, true, apperrors.ErrValidationFailed},
		{"blank username", &dto.UpdateUserRequest{Username: strPtr(" ")}, true, apperrors.ErrValidationFailed},
		{"bad status", &dto.UpdateUserRequest{Status: strPtr("Sleeping")}, true, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := newTestUserService(repo, new(MockFileStorage), nil)
			if tt.found {
				repo.On("GetByID", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
			} else {
				repo.On("GetByID", mock.Anything, int64(3)).Return(nil, apperrors.ErrUserNotFound)
			}

			err := svc.UpdateUser(context.Background(), 3, tt.req, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockFileStorage)
	inv := &MockInvalidator{}
	svc := newTestUserService(repo, storage, inv)

	url := "http://localhost:8080/uploads/profile_images/me.png"
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.User{ID: 5, ProfileImage: &url}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	storage.On("DeleteFile", url).Return(errors.New("disk gone"))

	// a failed file cleanup is logged, not returned
	require.NoError(t, svc.DeleteUser(context.Background(), 5))
	storage.AssertExpectations(t)
	assert.Equal(t, 1, inv.calls)
}

func TestUserService_DeleteUser_ActiveMentorship(t *testing.T) {
	repo := new(MockUserRepository)
	storage := new(MockFileStorage)
	svc := newTestUserService(repo, storage, nil)

	url := "http://localhost:8080/uploads/profile_images/me.png"
	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.User{ID: 5, ProfileImage: &url}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(apperrors.ErrUserHasActiveMentorship)

	err := svc.DeleteUser(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrUserHasActiveMentorship)
	storage.AssertNotCalled(t, "DeleteFile", mock.Anything)
}

func TestUserService_EmailIsStoredLowercase(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestUserService(repo, new(MockFileStorage), nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@x.com"
	})).Return(nil).Once()
	// the lowercased address collides with the existing account
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailAlreadyExists)

	req := &dto.CreateUserRequest{FirstName: "Jane", LastName: "Doe", Email: " Jane@X.com ", Username: "jane", Password: "pw"}
	_, err := svc.CreateUser(context.Background(), req, nil)
	require.NoError(t, err)

	req = &dto.CreateUserRequest{FirstName: "Jane", LastName: "Roe", Email: "JANE@x.com", Username: "jane2", Password: "pw"}
	_, err = svc.CreateUser(context.Background(), req, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	repo.On("GetByID", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
	repo.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(p models.UserPatch) bool {
		return p.Email != nil && *p.Email == "new@x.com"
	})).Return(nil)
	require.NoError(t, svc.UpdateUser(context.Background(), 3, &dto.UpdateUserRequest{Email: strPtr("New@X.com")}, nil))
	repo.AssertExpectations(t)
}
