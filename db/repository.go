package db

import (
	"context"
	"database/sql"
	"errors"
	"vintrack/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// VINRepository defines the interface for VIN record operations. Every query
// is scoped to an owning user; the same VIN value may exist under different
// owners.
type VINRepository interface {
	Repository
	FindByID(ctx context.Context, id string) (*models.VIN, error)
	FindByUserAndVIN(ctx context.Context, userID, vin string) (*models.VIN, error)
	FindAllByUserID(ctx context.Context, userID string) ([]*models.VIN, error)
	CreateOrUpdate(ctx context.Context, record *models.VIN) (*models.VIN, error)
	DeleteByID(ctx context.Context, id string) error
}

// ListingCacheRepository defines the interface for the per-VIN listing cache.
// Replace is a full overwrite of the cache document; there is no partial
// merge, and writes for different VIN keys never interfere.
type ListingCacheRepository interface {
	Repository
	Find(ctx context.Context, vin string) (*models.ListingCache, error)
	Replace(ctx context.Context, vin string, listings []models.Listing) error
	Delete(ctx context.Context, vin string) error
}

// SettingsRepository defines the interface for user refresh settings
type SettingsRepository interface {
	Repository
	FindByUserID(ctx context.Context, userID string) (*models.Settings, error)
	FindAllByInterval(ctx context.Context, interval models.RefreshInterval) ([]*models.Settings, error)
	Create(ctx context.Context, settings *models.Settings) error
	Update(ctx context.Context, settings *models.Settings) error
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLiteDB    *sql.DB
	MongoClient *mongo.Client
	DBName      string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, mongoClient *mongo.Client, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB:    sqliteDB,
		MongoClient: mongoClient,
		DBName:      dbName,
	}
}

// NewVINRepository creates a new VIN repository
func (f *RepositoryFactory) NewVINRepository() VINRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteVINRepository(f.SQLiteDB)
	}
	return NewMongoVINRepository(f.MongoClient, f.DBName, "vins")
}

// NewListingCacheRepository creates a new listing cache repository
func (f *RepositoryFactory) NewListingCacheRepository() ListingCacheRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteListingCacheRepository(f.SQLiteDB)
	}
	return NewMongoListingCacheRepository(f.MongoClient, f.DBName, "listings")
}

// NewSettingsRepository creates a new settings repository
func (f *RepositoryFactory) NewSettingsRepository() SettingsRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteSettingsRepository(f.SQLiteDB)
	}
	return NewMongoSettingsRepository(f.MongoClient, f.DBName, "userSettings")
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}
