package models

// User represents an authenticated account. The user ID is the opaque owner
// identifier that scopes VIN records and settings.
type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
}
