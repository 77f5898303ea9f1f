package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"vintrack/db"
	"vintrack/internal/listing"
	"vintrack/internal/provider"
	"vintrack/internal/settings"
	"vintrack/models"
)

// Scheduler runs scheduled listing refreshes. Each supported cadence gets its
// own cron entry; a run on one cadence refreshes the VINs of every user whose
// settings select that cadence.
type Scheduler struct {
	listings *listing.ListingService
	settings *settings.SettingsService
	vinRepo  db.VINRepository
	cron     *cron.Cron
}

func New(listings *listing.ListingService, settingsSvc *settings.SettingsService, vinRepo db.VINRepository) *Scheduler {
	return &Scheduler{
		listings: listings,
		settings: settingsSvc,
		vinRepo:  vinRepo,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	for _, interval := range models.RefreshIntervals() {
		interval := interval
		_, err := s.cron.AddFunc(string(interval), func() {
			s.runInterval(ctx, interval)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", interval, err)
		}
	}

	s.cron.Start()
	log.Println("Refresh scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// runInterval refreshes every VIN of every user scheduled on the cadence.
// One VIN failing never stops the run; a missing provider credential does,
// since every remaining fetch would fail the same way.
func (s *Scheduler) runInterval(ctx context.Context, interval models.RefreshInterval) {
	log.Printf("Scheduled refresh starting for cadence %q", interval)

	users, err := s.settings.UsersOnInterval(ctx, interval)
	if err != nil {
		log.Printf("Scheduled refresh aborted, could not load users: %v", err)
		return
	}

	refreshed, failed := 0, 0
	for _, user := range users {
		vins, err := s.vinRepo.FindAllByUserID(ctx, user.UserID)
		if err != nil {
			log.Printf("Skipping user %s, could not load VINs: %v", user.UserID, err)
			continue
		}

		for _, vinRec := range vins {
			if _, err := s.listings.RefreshVIN(ctx, vinRec, true); err != nil {
				if errors.Is(err, provider.ErrNoAPIKey) {
					log.Printf("Scheduled refresh aborted: %v", err)
					return
				}
				log.Printf("Scheduled refresh failed for VIN %s: %v", vinRec.VIN, err)
				failed++
				continue
			}
			refreshed++
		}
	}

	log.Printf("Scheduled refresh done for cadence %q: %d refreshed, %d failed", interval, refreshed, failed)
}
