package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/agripoulet/internal/domain/models"
)

const (
	collectionName = "documents"
	documentKey    = "agripoulet_pro_cloud_v1"
)

// envelope wraps the application document under a fixed key so the whole
// state lives in exactly one Mongo document.
type envelope struct {
	Key  string          `bson:"_id"`
	Data models.Document `bson:"data"`
}

// Repository stores the application document as a single Mongo document,
// replaced wholesale on every save.
type Repository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client:   client,
		dbName:   dbName,
		collName: collectionName,
	}, nil
}

// Load fetches the last saved document. A missing or undecodable envelope
// yields found=false without error so the caller can start from the default.
func (r *Repository) Load(ctx context.Context) (models.Document, bool, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	var env envelope
	err := collection.FindOne(ctx, bson.M{"_id": documentKey}).Decode(&env)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, false, nil
	}
	if err != nil {
		return models.Document{}, false, fmt.Errorf("failed to load document: %w", err)
	}

	return env.Data, true, nil
}

// Save upserts the document under its fixed key.
func (r *Repository) Save(ctx context.Context, doc models.Document) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": documentKey}, envelope{Key: documentKey, Data: doc}, opts); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
