package vin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vintrack/db"
	"vintrack/internal/provider"
	"vintrack/models"
)

// SpecsClient is the slice of the provider API the VIN service needs.
type SpecsClient interface {
	FetchSpecs(ctx context.Context, vin string) (*provider.VehicleSpecs, error)
}

// VINService handles tracked-VIN operations
type VINService struct {
	specs     SpecsClient
	repo      db.VINRepository
	dbManager *db.DBManager
}

// NewVINService creates a new VIN service
func NewVINService(specs SpecsClient, repo db.VINRepository, dbManager *db.DBManager) *VINService {
	return &VINService{
		specs:     specs,
		repo:      repo,
		dbManager: dbManager,
	}
}

// Add validates and registers a VIN for the user. The VIN is decoded through
// the provider to fill in year/make/model/color; a decode failure is logged
// and the VIN is stored without enrichment. Adding a VIN the user already
// tracks updates the existing record instead of creating a duplicate.
func (s *VINService) Add(ctx context.Context, userID, vin string) (*models.VIN, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if err := models.ValidateVIN(vin); err != nil {
		return nil, err
	}

	record := &models.VIN{
		UserID: userID,
		VIN:    vin,
	}

	if specs, err := s.specs.FetchSpecs(ctx, vin); err != nil {
		log.Printf("VIN decode failed for %s, storing without vehicle info: %v", vin, err)
	} else {
		record.Year = specs.Year
		record.Make = specs.Make
		record.Model = specs.Model
		record.Color = specs.ExteriorColor
	}

	saved, err := s.dbManager.CreateOrUpdateVIN(s.repo, ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save VIN %s: %w", vin, err)
	}
	return saved, nil
}

// List returns every VIN tracked by the user.
func (s *VINService) List(ctx context.Context, userID string) ([]*models.VIN, error) {
	return s.repo.FindAllByUserID(ctx, userID)
}

// Delete removes a tracked VIN by id. The record must belong to the given
// user. The listing cache entry for the VIN value is left in place because
// other users may track the same VIN.
func (s *VINService) Delete(ctx context.Context, userID, id string) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return db.ErrNotFound
	}
	return s.dbManager.DeleteVIN(s.repo, ctx, id)
}

// VehicleInfo decodes a VIN without registering it.
func (s *VINService) VehicleInfo(ctx context.Context, vin string) (*provider.VehicleSpecs, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if err := models.ValidateVIN(vin); err != nil {
		return nil, err
	}
	return s.specs.FetchSpecs(ctx, vin)
}
