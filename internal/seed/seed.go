// Package seed creates default data on first boot
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/arvind/placementdesk/internal/app/models"
	appRepos "github.com/arvind/placementdesk/internal/app/repositories"
	"github.com/arvind/placementdesk/internal/config"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/auth"
)

// CreateDefaultAdmin creates the configured admin account if it does not exist
// yet. Without it a fresh deployment would have no way to create coordinators.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Warn().Msg("Admin seed skipped: admin email or password not configured")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Name:      cfg.Admin.Name,
		Email:     cfg.Admin.Email,
		Password:  hashed,
		Role:      appModels.RoleAdmin,
		IsEnabled: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", cfg.Admin.Email).Msg("Admin account already exists, skipping seed")
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Default admin account created")
	return nil
}
