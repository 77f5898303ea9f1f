package models

// RawHistoryRecord is the untrusted shape returned by the vehicle-data
// provider's history endpoint. Records are normalized into Listing before
// anything is persisted; a RawHistoryRecord itself is never stored.
type RawHistoryRecord struct {
	ID             string  `json:"id"`
	Source         string  `json:"source"`
	LastSeenAtDate string  `json:"last_seen_at_date"`
	Price          float64 `json:"price"`
	Miles          float64 `json:"miles"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	SellerName     string  `json:"seller_name"`
	VDPURL         string  `json:"vdp_url"`
	ExteriorColor  string  `json:"exterior_color"`
	Color          string  `json:"color"`
}

// Sentinel values used when a provider record omits a field.
const (
	LocationUnavailable = "Location not available"
	UnknownSource       = "Unknown source"
	UnknownSeller       = "Unknown seller"
)

// Listing is the canonical, persisted representation of one marketplace
// sighting of a VIN. Every field except ID and Date may carry a default.
type Listing struct {
	ID       string  `bson:"id" json:"id"`
	VIN      string  `bson:"vin" json:"vin"`
	Title    string  `bson:"title" json:"title"`
	Date     string  `bson:"date" json:"date"`
	URL      string  `bson:"url" json:"url"`
	Price    float64 `bson:"price" json:"price"`
	Miles    int     `bson:"miles" json:"miles"`
	Location string  `bson:"location" json:"location"`
	Source   string  `bson:"source" json:"source"`
	Seller   string  `bson:"seller" json:"seller"`
}

// ListingCache is the per-VIN cache document. A refresh replaces the whole
// document; listings are never merged into an existing entry.
type ListingCache struct {
	VIN         string    `bson:"_id" json:"vin"`
	Listings    []Listing `bson:"listings" json:"listings"`
	LastUpdated string    `bson:"last_updated" json:"lastUpdated"`
}
