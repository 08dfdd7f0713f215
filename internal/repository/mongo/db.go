// Package mongo is the MongoDB storage backend, selected with db.driver=mongo.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gstbill/internal/config"
)

const (
	usersCollection     = "users"
	documentsCollection = "documents"
	catalogsCollection  = "catalogs"
)

// DB bundles the client with the application database.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect dials MongoDB with the money/uuid codecs registered, pings it and
// makes sure the indexes exist.
func Connect(cfg *config.MongoConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetRegistry(NewRegistry()))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := &DB{Client: client, Database: client.Database(cfg.Database)}
	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

// Ping checks the server is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (d *DB) Close() error {
	return d.Client.Disconnect(context.Background())
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Database.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating users index: %w", err)
	}

	_, err = d.Database.Collection(documentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "doc_type", Value: 1}, {Key: "details.number", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating documents indexes: %w", err)
	}

	_, err = d.Database.Collection(catalogsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating catalogs index: %w", err)
	}
	return nil
}
