package db

import (
	"context"
	"fmt"
	"time"

	"vintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVINRepository implements the VINRepository interface for MongoDB
type MongoVINRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoVINRepository creates a new MongoVINRepository
func NewMongoVINRepository(client *mongo.Client, database, collection string) *MongoVINRepository {
	return &MongoVINRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoVINRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// FindByID finds a VIN record by ID
func (r *MongoVINRepository) FindByID(ctx context.Context, id string) (*models.VIN, error) {
	var record models.VIN
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding vin record: %w", err)
	}

	return &record, nil
}

// FindByUserAndVIN finds a VIN record by owner and VIN value
func (r *MongoVINRepository) FindByUserAndVIN(ctx context.Context, userID, vin string) (*models.VIN, error) {
	var record models.VIN
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"user_id": userID, "vin": vin}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding vin record: %w", err)
	}

	return &record, nil
}

// FindAllByUserID finds all VIN records owned by a user
func (r *MongoVINRepository) FindAllByUserID(ctx context.Context, userID string) ([]*models.VIN, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding vin records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.VIN
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding vin records: %w", err)
	}

	return records, nil
}

// CreateOrUpdate creates a VIN record, or updates the existing record when the
// owner already tracks the same VIN value.
func (r *MongoVINRepository) CreateOrUpdate(ctx context.Context, record *models.VIN) (*models.VIN, error) {
	now := time.Now()
	record.UpdatedAt = now

	existing, err := r.FindByUserAndVIN(ctx, record.UserID, record.VIN)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if err == ErrNotFound {
		if record.ID == "" {
			record.ID = GenerateID()
		}
		record.CreatedAt = now
	} else {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": record.ID}
	update := bson.M{"$set": record}

	_, err = r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return nil, fmt.Errorf("error upserting vin record: %w", err)
	}

	return record, nil
}

// DeleteByID deletes a VIN record by ID
func (r *MongoVINRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.client.Database(r.database).Collection(r.collection).
		DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting vin record: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// MongoListingCacheRepository implements the ListingCacheRepository interface
// for MongoDB. Each cache entry is one document keyed by VIN value; a refresh
// replaces the whole document.
type MongoListingCacheRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoListingCacheRepository creates a new MongoListingCacheRepository
func NewMongoListingCacheRepository(client *mongo.Client, database, collection string) *MongoListingCacheRepository {
	return &MongoListingCacheRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoListingCacheRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Find finds the cache entry for a VIN
func (r *MongoListingCacheRepository) Find(ctx context.Context, vin string) (*models.ListingCache, error) {
	var entry models.ListingCache
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": vin}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding listing cache: %w", err)
	}

	return &entry, nil
}

// Replace overwrites the cache entry for a VIN with the given listing set and
// stamps the entry with the current time.
func (r *MongoListingCacheRepository) Replace(ctx context.Context, vin string, listings []models.Listing) error {
	entry := models.ListingCache{
		VIN:         vin,
		Listings:    listings,
		LastUpdated: time.Now().Format(time.RFC3339),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.client.Database(r.database).Collection(r.collection).
		ReplaceOne(ctx, bson.M{"_id": vin}, entry, opts)
	if err != nil {
		return fmt.Errorf("error replacing listing cache for %s: %w", vin, err)
	}

	return nil
}

// Delete removes the cache entry for a VIN. Deleting a missing entry is not
// an error.
func (r *MongoListingCacheRepository) Delete(ctx context.Context, vin string) error {
	_, err := r.client.Database(r.database).Collection(r.collection).
		DeleteOne(ctx, bson.M{"_id": vin})
	if err != nil {
		return fmt.Errorf("error deleting listing cache for %s: %w", vin, err)
	}

	return nil
}

// MongoSettingsRepository implements the SettingsRepository interface for MongoDB
type MongoSettingsRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoSettingsRepository creates a new MongoSettingsRepository
func NewMongoSettingsRepository(client *mongo.Client, database, collection string) *MongoSettingsRepository {
	return &MongoSettingsRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoSettingsRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// FindByUserID finds settings by user ID
func (r *MongoSettingsRepository) FindByUserID(ctx context.Context, userID string) (*models.Settings, error) {
	var settings models.Settings
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding settings: %w", err)
	}

	return &settings, nil
}

// FindAllByInterval finds all settings that selected the given refresh cadence
func (r *MongoSettingsRepository) FindAllByInterval(ctx context.Context, interval models.RefreshInterval) ([]*models.Settings, error) {
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, bson.M{"refresh_interval": string(interval)})
	if err != nil {
		return nil, fmt.Errorf("error finding settings: %w", err)
	}
	defer cursor.Close(ctx)

	var all []*models.Settings
	if err = cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}

	return all, nil
}

// Create creates new settings
func (r *MongoSettingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertOne(ctx, settings)
	if err != nil {
		return fmt.Errorf("error creating settings: %w", err)
	}

	return nil
}

// Update updates existing settings
func (r *MongoSettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	filter := bson.M{"_id": settings.ID}
	update := bson.M{"$set": settings}

	_, err := r.client.Database(r.database).Collection(r.collection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}

	return nil
}
