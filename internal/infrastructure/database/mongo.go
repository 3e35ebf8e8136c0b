package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig groups the MongoDB connection parameters for the engagement store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// MongoDB wraps the driver client and the engagement database handle.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *MongoConfig
}

func NewMongoDB(cfg *MongoConfig) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect establishes the client and verifies it with a ping.
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Println("[MONGO] Connecting to MongoDB...")

	connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(db.Config.URI).
		SetConnectTimeout(db.Config.ConnectTimeout))
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	db.Client = client
	db.Database = client.Database(db.Config.Database)

	log.Println("[MONGO] Connected successfully")
	return nil
}

// EnsureIndexes creates the unique entity_id index on a metadata collection.
// Uniqueness is what makes the lazy upsert safe under concurrent writers.
func (db *MongoDB) EnsureIndexes(ctx context.Context, collections ...string) error {
	for _, name := range collections {
		_, err := db.Database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "entity_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", name, err)
		}
	}
	return nil
}

// HealthCheck pings the server with a short timeout.
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
