package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/models/dto"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/auth"
	"github.com/yigit/mentorhub/internal/pkg/filestorage"
)

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, image *multipart.FileHeader) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest, image *multipart.FileHeader) error
	DeleteUser(ctx context.Context, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo    repositories.IUserRepository
	fileStorage filestorage.FileStorage
	stats       StatsInvalidator
	hash        func(string) (string, error)
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	fileStorage filestorage.FileStorage,
	stats StatsInvalidator,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		stats:       invalidatorOrNoop(stats),
		hash:        auth.HashPassword,
		logger:      logger,
	}
}

// ListUsers returns users matching every supplied filter, ordered by id
func (s *userServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]*models.User, error) {
	var f repositories.UserFilter
	if filter != nil {
		if filter.Role != nil && *filter.Role != "" {
			role := models.RoleType(*filter.Role)
			if !role.Valid() {
				return nil, apperrors.NewValidationError("invalid role filter")
			}
			f.Role = &role
		}
		if filter.Status != nil && *filter.Status != "" {
			status := models.UserStatus(*filter.Status)
			if !status.Valid() {
				return nil, apperrors.NewValidationError("invalid status filter")
			}
			f.Status = &status
		}
		if search := trimmed(filter.Search); search != nil && *search != "" {
			f.Search = search
		}
	}

	users, err := s.userRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser hashes the password, stores the optional profile image and
// inserts the user. The stored image is removed again if the insert fails.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest, image *multipart.FileHeader) (*models.User, error) {
	user := req.ToModel()
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	user.Email = normalizeEmail(user.Email)
	user.Username = strings.TrimSpace(user.Username)

	if user.FirstName == "" || user.LastName == "" || user.Email == "" || user.Username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("first_name, last_name, email, username and password are required")
	}
	if !user.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role")
	}
	if !user.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status")
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	if image != nil {
		url, err := s.fileStorage.SaveFileWithPath(image, filestorage.ProfileImageDir)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = &url
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if user.ProfileImage != nil {
			s.removeFile(*user.ProfileImage)
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	s.stats.Invalidate(ctx)
	return user, nil
}

// UpdateUser applies a partial update. A new image replaces the stored one
// and the old file is removed once the row is updated.
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest, image *multipart.FileHeader) error {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch, err := s.buildPatch(req)
	if err != nil {
		return err
	}

	if image != nil {
		url, err := s.fileStorage.SaveFileWithPath(image, filestorage.ProfileImageDir)
		if err != nil {
			return err
		}
		patch.ProfileImage = &url
	}

	if len(patch.Columns()) == 0 {
		return apperrors.NewValidationError("no fields to update")
	}

	if err := s.userRepo.Update(ctx, id, patch); err != nil {
		if patch.ProfileImage != nil {
			s.removeFile(*patch.ProfileImage)
		}
		return err
	}

	if patch.ProfileImage != nil && existing.ProfileImage != nil && *existing.ProfileImage != "" {
		s.removeFile(*existing.ProfileImage)
	}

	s.logger.Info().Int64("userID", id).Int("fields", len(patch.Columns())).Msg("User updated")
	s.stats.Invalidate(ctx)
	return nil
}

func (s *userServiceImpl) buildPatch(req *dto.UpdateUserRequest) (models.UserPatch, error) {
	var patch models.UserPatch
	if req == nil {
		return patch, nil
	}

	required := []struct {
		name string
		src  *string
		dst  **string
	}{
		{"first_name", req.FirstName, &patch.FirstName},
		{"last_name", req.LastName, &patch.LastName},
		{"email", req.Email, &patch.Email},
		{"username", req.Username, &patch.Username},
	}
	for _, f := range required {
		v := trimmed(f.src)
		if v == nil {
			continue
		}
		if *v == "" {
			return patch, apperrors.NewValidationError(f.name + " cannot be empty")
		}
		*f.dst = v
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}

	if req.Role != nil {
		role := models.RoleType(*req.Role)
		if !role.Valid() {
			return patch, apperrors.NewValidationError("invalid role")
		}
		patch.Role = &role
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		if !status.Valid() {
			return patch, apperrors.NewValidationError("invalid status")
		}
		patch.Status = &status
	}

	// an empty password means "keep the current one"
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return patch, fmt.Errorf("error hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	patch.JobTitle = req.JobTitle
	patch.Skills = req.Skills
	patch.Bio = req.Bio
	return patch, nil
}

// DeleteUser removes the user and then their stored image
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if user.ProfileImage != nil && *user.ProfileImage != "" {
		s.removeFile(*user.ProfileImage)
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted")
	s.stats.Invalidate(ctx)
	return nil
}

func (s *userServiceImpl) removeFile(url string) {
	if err := s.fileStorage.DeleteFile(url); err != nil {
		s.logger.Warn().Err(err).Str("file", url).Msg("Could not delete stored file")
	}
}
