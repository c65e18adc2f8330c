package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"timecard-report/internal/config"
	"timecard-report/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBClient wraps MongoDB client for export history
type MongoDBClient struct {
	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
}

// NewMongoDBClient creates a new MongoDB client for export history
func NewMongoDBClient(cfg config.MongoDBConfig) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri, logURI := BuildURI(cfg)
	log.Printf("Attempting to connect to MongoDB at %s", logURI)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB at %s: %w", logURI, err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB at %s: %w", logURI, err)
	}

	database := client.Database(cfg.Database)
	collection := database.Collection(cfg.Collection)

	// History is listed per user, newest first
	historyIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, historyIndex); err != nil {
		// Index might already exist, that's okay
		log.Printf("Note: MongoDB history index creation: %v", err)
	}
	contentIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "contentKey", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, contentIndex); err != nil {
		log.Printf("Note: MongoDB content index creation: %v", err)
	}

	return &MongoDBClient{
		client:     client,
		database:   database,
		collection: collection,
	}, nil
}

// BuildURI returns the connection URI and a copy with the password masked
// for logging
func BuildURI(cfg config.MongoDBConfig) (uri, logURI string) {
	if cfg.URI != "" {
		return cfg.URI, maskURI(cfg.URI)
	}

	authSource := cfg.AuthSource
	if authSource == "" {
		authSource = "admin"
	}

	if cfg.Username != "" && cfg.Password != "" {
		// Use url.UserPassword to properly encode username and password
		userInfo := url.UserPassword(cfg.Username, cfg.Password)
		uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
			userInfo.String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(authSource))
		logURI = fmt.Sprintf("mongodb://%s:***@%s:%s/%s?authSource=%s",
			url.User(cfg.Username).String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(authSource))
		return uri, logURI
	}

	uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
	return uri, uri
}

func maskURI(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, hasPassword := parsed.User.Password(); hasPassword {
		parsed.User = url.UserPassword(parsed.User.Username(), "***")
	}
	return parsed.String()
}

// Close closes the MongoDB client connection
func (c *MongoDBClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// GenerateContentKey hashes everything that determines an export's bytes:
// owner, period, format, employee name and the punch events themselves.
// Two exports with the same key are identical.
func GenerateContentKey(userID, employee, startDate, endDate string, format models.ExportFormat, events []models.PunchEvent) string {
	eventData, _ := json.Marshal(events)
	keyData := fmt.Sprintf("%s:%s:%s:%s:%s:%s", userID, employee, startDate, endDate, format, eventData)

	hash := sha256.Sum256([]byte(keyData))
	return hex.EncodeToString(hash[:])
}

// RecordExport stores a completed export in the history collection
func (c *MongoDBClient) RecordExport(ctx context.Context, record *models.ExportRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Use upsert so a retried task does not duplicate its entry
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": record.TaskID}
	update := bson.M{"$set": record}

	if _, err := c.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// ListExports returns a user's most recent exports, newest first
func (c *MongoDBClient) ListExports(ctx context.Context, userID string, limit int) ([]models.ExportRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := c.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.ExportRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode exports: %w", err)
	}
	return records, nil
}

// FindExportByContentKey returns a previous export with identical
// content, or nil when there is none
func (c *MongoDBClient) FindExportByContentKey(ctx context.Context, userID, contentKey string) (*models.ExportRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.ExportRecord
	err := c.collection.FindOne(ctx, bson.M{"userId": userID, "contentKey": contentKey}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No previous export
		}
		return nil, fmt.Errorf("failed to query export: %w", err)
	}
	return &record, nil
}
