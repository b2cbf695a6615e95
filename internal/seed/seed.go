package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/mentorhub/internal/app/models"
	appRepos "github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/auth"
)

// AdminAccount holds the credentials of the default administrator
type AdminAccount struct {
	Email    string
	Username string
	Password string
}

// CreateDefaultData creates the default Admin user unless an Admin already exists.
// An empty password disables seeding.
func CreateDefaultData(ctx context.Context, userRepo appRepos.IUserRepository, admin AdminAccount, lgr zerolog.Logger) error {
	if admin.Password == "" {
		lgr.Info().Msg("No seed admin password configured, skipping default admin")
		return nil
	}

	exists, err := userRepo.ExistsByRole(ctx, appModels.RoleAdmin)
	if err != nil {
		return fmt.Errorf("checking for admin user: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Admin user already present")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user := &appModels.User{
		FirstName:    "Admin",
		Email:        admin.Email,
		Username:     admin.Username,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
		Status:       appModels.UserStatusActive,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			lgr.Warn().Str("email", admin.Email).Msg("Seed admin credentials collide with an existing user, skipping")
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	lgr.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Default admin user created")
	return nil
}
