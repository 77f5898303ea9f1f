package testutils

import (
	"time"

	"vintrack/models"

	"github.com/google/uuid"
)

func CreateTestVIN(userID, vin string) *models.VIN {
	now := time.Now()

	return &models.VIN{
		ID:        uuid.New().String(),
		UserID:    userID,
		VIN:       vin,
		Year:      "2020",
		Make:      "Honda",
		Model:     "Civic",
		Color:     "Blue",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func CreateTestListing(id, vin, date string) models.Listing {
	return models.Listing{
		ID:       id,
		VIN:      vin,
		Title:    "2020 Honda Civic",
		Date:     date,
		URL:      "https://example.com/vdp/" + id,
		Price:    18500,
		Miles:    42000,
		Location: "Austin, TX 78701",
		Source:   "example.com",
		Seller:   "Example Motors",
	}
}

func CreateTestHistoryRecord(id, date string) models.RawHistoryRecord {
	return models.RawHistoryRecord{
		ID:             id,
		Source:         "example.com",
		LastSeenAtDate: date,
		Price:          18500,
		Miles:          42000,
		City:           "Austin",
		State:          "TX",
		Zip:            "78701",
		SellerName:     "Example Motors",
		VDPURL:         "https://example.com/vdp/" + id,
	}
}

func CreateTestSettings(userID string, interval models.RefreshInterval) *models.Settings {
	now := time.Now()
	return &models.Settings{
		ID:              uuid.New().String(),
		UserID:          userID,
		RefreshInterval: interval,
		CreatedAt:       &now,
		UpdatedAt:       &now,
	}
}
