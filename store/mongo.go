package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return client, nil
}

// Mongo bundles the Mongo-backed stores over a single database.
type Mongo struct {
	Users    *MongoUsers
	Clothing *MongoClothing
	Outfits  *MongoOutfits
}

// NewMongo returns stores over the named database.
func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	outfits := &MongoOutfits{col: db.Collection("outfits")}
	return &Mongo{
		Users:    &MongoUsers{col: db.Collection("users")},
		Clothing: &MongoClothing{col: db.Collection("clothing")},
		Outfits:  outfits,
	}
}

// EnsureIndexes creates the unique indexes the uniqueness rules rely on:
// users.username, users.email and outfits.name.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.Users.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = m.Outfits.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create outfit indexes: %w", err)
	}
	return nil
}
