package listing

import (
	"testing"
	"time"

	"vintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVIN() *models.VIN {
	return &models.VIN{
		ID:     "vin-record-1",
		UserID: "user-1",
		VIN:    "1HGCM82633A004352",
		Year:   "2020",
		Make:   "Honda",
		Model:  "Civic",
	}
}

func TestNormalize(t *testing.T) {
	fetchedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("FullRecord", func(t *testing.T) {
		raw := models.RawHistoryRecord{
			ID:             "mc-123",
			Source:         "cars.example.com",
			LastSeenAtDate: "2024-03-01",
			Price:          18500,
			Miles:          42000.7,
			City:           "Austin",
			State:          "TX",
			Zip:            "78701",
			SellerName:     "Example Motors",
			VDPURL:         "https://cars.example.com/vdp/mc-123",
		}

		l, ok := Normalize(raw, testVIN(), fetchedAt)
		require.True(t, ok)
		assert.Equal(t, "mc-123", l.ID)
		assert.Equal(t, "1HGCM82633A004352", l.VIN)
		assert.Equal(t, "2020 Honda Civic", l.Title)
		assert.Equal(t, "2024-03-01", l.Date)
		assert.Equal(t, float64(18500), l.Price)
		assert.Equal(t, 42000, l.Miles)
		assert.Equal(t, "Austin, TX 78701", l.Location)
		assert.Equal(t, "cars.example.com", l.Source)
		assert.Equal(t, "Example Motors", l.Seller)
	})

	t.Run("RejectsMissingDate", func(t *testing.T) {
		raw := models.RawHistoryRecord{ID: "mc-123", Price: 18500}
		_, ok := Normalize(raw, testVIN(), fetchedAt)
		assert.False(t, ok)
	})

	t.Run("FallbackIDFromVINAndFetchTime", func(t *testing.T) {
		raw := models.RawHistoryRecord{LastSeenAtDate: "2024-03-01"}
		l, ok := Normalize(raw, testVIN(), fetchedAt)
		require.True(t, ok)
		assert.Equal(t, "1HGCM82633A004352-1710504000", l.ID)
	})

	t.Run("DefaultsForMissingFields", func(t *testing.T) {
		raw := models.RawHistoryRecord{LastSeenAtDate: "2024-03-01"}
		l, ok := Normalize(raw, testVIN(), fetchedAt)
		require.True(t, ok)
		assert.Equal(t, float64(0), l.Price)
		assert.Equal(t, 0, l.Miles)
		assert.Equal(t, models.LocationUnavailable, l.Location)
		assert.Equal(t, models.UnknownSource, l.Source)
		assert.Equal(t, models.UnknownSeller, l.Seller)
		assert.Equal(t, "", l.URL)
	})

	t.Run("LocationNeedsCityAndState", func(t *testing.T) {
		raw := models.RawHistoryRecord{LastSeenAtDate: "2024-03-01", City: "Austin"}
		l, _ := Normalize(raw, testVIN(), fetchedAt)
		assert.Equal(t, models.LocationUnavailable, l.Location)

		raw.State = "TX"
		l, _ = Normalize(raw, testVIN(), fetchedAt)
		assert.Equal(t, "Austin, TX", l.Location)
	})

	t.Run("TitleFromVINRecordWithPlaceholders", func(t *testing.T) {
		vinRec := testVIN()
		vinRec.Year = ""
		vinRec.Model = ""
		raw := models.RawHistoryRecord{LastSeenAtDate: "2024-03-01"}
		l, _ := Normalize(raw, vinRec, fetchedAt)
		assert.Equal(t, "N/A Honda N/A", l.Title)
	})

	t.Run("Deterministic", func(t *testing.T) {
		raw := models.RawHistoryRecord{ID: "mc-9", LastSeenAtDate: "2024-03-01", Price: 100}
		first, ok1 := Normalize(raw, testVIN(), fetchedAt)
		second, ok2 := Normalize(raw, testVIN(), fetchedAt)
		assert.True(t, ok1)
		assert.True(t, ok2)
		assert.Equal(t, first, second)
	})
}

func TestFilterByWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	records := []models.RawHistoryRecord{
		{ID: "recent", LastSeenAtDate: "2024-05-01"},
		{ID: "old", LastSeenAtDate: "2024-02-28"},
		{ID: "unparseable", LastSeenAtDate: "last tuesday"},
		{ID: "no-date"},
	}

	t.Run("DropsRecordsOutsideWindow", func(t *testing.T) {
		kept := FilterByWindow(records, now, 2)
		ids := make([]string, 0, len(kept))
		for _, r := range kept {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"recent", "unparseable"}, ids)
	})

	t.Run("DisabledWindowKeepsEverything", func(t *testing.T) {
		kept := FilterByWindow(records, now, 0)
		assert.Len(t, kept, len(records))
	})

	t.Run("BoundaryDateIsKept", func(t *testing.T) {
		boundary := []models.RawHistoryRecord{{ID: "edge", LastSeenAtDate: "2024-04-01"}}
		kept := FilterByWindow(boundary, now, 2)
		assert.Len(t, kept, 1)
	})
}

func TestParseListingDate(t *testing.T) {
	for _, value := range []string{"2024-03-01", "2024-03-01 13:45:00", "2024-03-01T13:45:00Z"} {
		_, err := ParseListingDate(value)
		assert.NoError(t, err, "date %q should parse", value)
	}

	_, err := ParseListingDate("03/01/2024")
	assert.Error(t, err)
}
