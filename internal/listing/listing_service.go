package listing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vintrack/db"
	"vintrack/internal/provider"
	"vintrack/models"
)

// ProviderClient is the slice of the provider API the listing service needs.
type ProviderClient interface {
	FetchHistory(ctx context.Context, vin string) ([]models.RawHistoryRecord, error)
}

// RefreshReport summarizes one refresh pass over a user's tracked VINs.
type RefreshReport struct {
	Refreshed int `json:"refreshed"`
	FromCache int `json:"from_cache"`
	Failed    int `json:"failed"`
}

// ListingService coordinates provider fetches, normalization and the per-VIN
// listing cache.
type ListingService struct {
	provider     ProviderClient
	vinRepo      db.VINRepository
	cacheRepo    db.ListingCacheRepository
	dbManager    *db.DBManager
	windowMonths int
}

// NewListingService creates a new listing service
func NewListingService(p ProviderClient, vinRepo db.VINRepository, cacheRepo db.ListingCacheRepository, dbManager *db.DBManager, windowMonths int) *ListingService {
	return &ListingService{
		provider:     p,
		vinRepo:      vinRepo,
		cacheRepo:    cacheRepo,
		dbManager:    dbManager,
		windowMonths: windowMonths,
	}
}

// RefreshVIN returns the listings for a single tracked VIN. Without force, a
// cache hit is served as-is and the provider is never contacted. With force,
// or on a cache miss, the cache entry is dropped, fresh history is fetched,
// and the cache is rewritten. An empty fetch result leaves no cache entry
// behind, so the next read tries the provider again instead of serving an
// empty document forever.
func (s *ListingService) RefreshVIN(ctx context.Context, vinRec *models.VIN, force bool) ([]models.Listing, error) {
	if !force {
		cached, err := s.cacheRepo.Find(ctx, vinRec.VIN)
		if err == nil {
			return cached.Listings, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("Cache read failed for %s, falling back to provider: %v", vinRec.VIN, err)
		}
	}

	// Drop the stale entry first so a fetch failure cannot leave old data
	// presented as fresh.
	if err := s.dbManager.DeleteListings(s.cacheRepo, ctx, vinRec.VIN); err != nil {
		log.Printf("Failed to clear cache for %s: %v", vinRec.VIN, err)
	}

	fetchedAt := time.Now()
	records, err := s.provider.FetchHistory(ctx, vinRec.VIN)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", vinRec.VIN, err)
	}

	records = FilterByWindow(records, fetchedAt, s.windowMonths)

	listings := make([]models.Listing, 0, len(records))
	for _, raw := range records {
		if l, ok := Normalize(raw, vinRec, fetchedAt); ok {
			listings = append(listings, l)
		}
	}

	if len(listings) > 0 {
		if err := s.dbManager.ReplaceListings(s.cacheRepo, ctx, vinRec.VIN, listings); err != nil {
			log.Printf("Failed to write cache for %s: %v", vinRec.VIN, err)
		}
	}

	return listings, nil
}

// RefreshListings runs a refresh pass over every VIN tracked by the user and
// returns the aggregated view. A failure on one VIN is logged and counted but
// never stops the pass; a missing provider credential aborts the whole pass
// because no VIN could succeed.
func (s *ListingService) RefreshListings(ctx context.Context, userID string, force bool, order SortOrder) ([]models.Listing, RefreshReport, error) {
	report := RefreshReport{}

	vins, err := s.vinRepo.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, report, fmt.Errorf("failed to load tracked VINs: %w", err)
	}

	sets := make([][]models.Listing, 0, len(vins))
	for _, vinRec := range vins {
		listings, err := s.refreshOne(ctx, vinRec, force, &report)
		if err != nil {
			if errors.Is(err, provider.ErrNoAPIKey) {
				return nil, report, err
			}
			log.Printf("Skipping VIN %s: %v", vinRec.VIN, err)
			report.Failed++
			continue
		}
		sets = append(sets, listings)
	}

	log.Printf("Refresh pass for user %s: %d refreshed, %d from cache, %d failed",
		userID, report.Refreshed, report.FromCache, report.Failed)

	return Aggregate(sets, order), report, nil
}

func (s *ListingService) refreshOne(ctx context.Context, vinRec *models.VIN, force bool, report *RefreshReport) ([]models.Listing, error) {
	if !force {
		cached, err := s.cacheRepo.Find(ctx, vinRec.VIN)
		if err == nil {
			report.FromCache++
			return cached.Listings, nil
		}
	}

	listings, err := s.RefreshVIN(ctx, vinRec, true)
	if err != nil {
		return nil, err
	}
	report.Refreshed++
	return listings, nil
}
