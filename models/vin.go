package models

import (
	"fmt"
	"strings"
	"time"
)

// VIN represents a vehicle identification number tracked by a user. The same
// VIN value may be tracked by multiple users; uniqueness is scoped to the
// owning user only.
type VIN struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	VIN       string    `bson:"vin" json:"vin"`
	Year      string    `bson:"year,omitempty" json:"year,omitempty"`
	Make      string    `bson:"make,omitempty" json:"make,omitempty"`
	Model     string    `bson:"model,omitempty" json:"model,omitempty"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

const vinLength = 17

// ValidateVIN checks that a VIN value is 17 alphanumeric characters and does
// not contain I, O or Q, which are excluded from the VIN alphabet.
func ValidateVIN(vin string) error {
	if len(vin) != vinLength {
		return fmt.Errorf("VIN must be %d characters, got %d", vinLength, len(vin))
	}
	upper := strings.ToUpper(vin)
	for _, c := range upper {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
			if c == 'I' || c == 'O' || c == 'Q' {
				return fmt.Errorf("VIN contains invalid character %q", c)
			}
		default:
			return fmt.Errorf("VIN contains invalid character %q", c)
		}
	}
	return nil
}
