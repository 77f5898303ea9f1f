package listing

import (
	"fmt"
	"strings"
	"time"

	"vintrack/models"
)

// Layouts the provider has been observed to use for last-seen dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseListingDate parses a provider last-seen date string.
func ParseListingDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// Normalize converts a raw provider history record into a canonical listing.
// It is a pure function: the same inputs always yield the same output, and it
// touches neither the network nor storage.
//
// A record without a last-seen date is rejected. A record without a provider
// id gets a fallback id composed from the VIN and fetch time; everything else
// is defaulted per field. Vehicle identity in the title always comes from the
// VIN record, never from the raw record.
func Normalize(raw models.RawHistoryRecord, vin *models.VIN, fetchedAt time.Time) (models.Listing, bool) {
	if raw.LastSeenAtDate == "" {
		return models.Listing{}, false
	}

	id := raw.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", vin.VIN, fetchedAt.Unix())
	}

	return models.Listing{
		ID:       id,
		VIN:      vin.VIN,
		Title:    composeTitle(vin),
		Date:     raw.LastSeenAtDate,
		URL:      raw.VDPURL,
		Price:    raw.Price,
		Miles:    int(raw.Miles),
		Location: composeLocation(raw.City, raw.State, raw.Zip),
		Source:   orDefault(raw.Source, models.UnknownSource),
		Seller:   orDefault(raw.SellerName, models.UnknownSeller),
	}, true
}

// FilterByWindow drops records last seen before the trailing window ending at
// now. A non-positive months value disables the filter. Records with dates
// that do not parse are kept; the filter only discards provably old records.
func FilterByWindow(records []models.RawHistoryRecord, now time.Time, months int) []models.RawHistoryRecord {
	if months <= 0 {
		return records
	}

	cutoff := now.AddDate(0, -months, 0)
	kept := make([]models.RawHistoryRecord, 0, len(records))
	for _, r := range records {
		if r.LastSeenAtDate == "" {
			continue
		}
		seen, err := ParseListingDate(r.LastSeenAtDate)
		if err == nil && seen.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func composeTitle(vin *models.VIN) string {
	parts := []string{
		orDefault(vin.Year, "N/A"),
		orDefault(vin.Make, "N/A"),
		orDefault(vin.Model, "N/A"),
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func composeLocation(city, state, zip string) string {
	if city == "" || state == "" {
		return models.LocationUnavailable
	}
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", city, state, zip))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
