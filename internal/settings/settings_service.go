package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vintrack/db"
	"vintrack/models"
)

// SettingsService handles refresh cadence settings
type SettingsService struct {
	repo db.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo db.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// GetUserSettings retrieves settings for a specific user, creating the daily
// default on first access.
func (s *SettingsService) GetUserSettings(ctx context.Context, userID string) (*models.Settings, error) {
	settings, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	settings = models.DefaultSettings()
	settings.UserID = userID
	settings.ID = db.GenerateID()
	now := time.Now()
	settings.CreatedAt = &now
	settings.UpdatedAt = &now

	if err := s.repo.Create(ctx, settings); err != nil {
		log.Printf("Error creating default settings for user %s: %v", userID, err)
		return settings, nil // Return defaults even if save fails
	}

	return settings, nil
}

// UpdateRefreshInterval changes the user's scheduled refresh cadence.
func (s *SettingsService) UpdateRefreshInterval(ctx context.Context, userID string, interval models.RefreshInterval) (*models.Settings, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("unsupported refresh interval %q", interval)
	}

	settings, err := s.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.RefreshInterval = interval
	now := time.Now()
	settings.UpdatedAt = &now

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// UsersOnInterval returns the settings of every user scheduled on the given
// cadence.
func (s *SettingsService) UsersOnInterval(ctx context.Context, interval models.RefreshInterval) ([]*models.Settings, error) {
	return s.repo.FindAllByInterval(ctx, interval)
}
