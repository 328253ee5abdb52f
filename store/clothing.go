package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
)

// MongoClothing implements ClothingStore over the clothing collection.
type MongoClothing struct {
	col *mongo.Collection
}

func (s *MongoClothing) Insert(ctx context.Context, item *models.Clothing) (*models.Clothing, error) {
	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert clothing: %v: %w", err, errs.ErrStore)
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (s *MongoClothing) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clothing, error) {
	var item models.Clothing
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find clothing %s: %v: %w", id.Hex(), err, errs.ErrStore)
	}
	return &item, nil
}

func (s *MongoClothing) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Clothing, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list clothing for user %s: %v: %w", ownerID.Hex(), err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	var items []models.Clothing
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode clothing for user %s: %v: %w", ownerID.Hex(), err, errs.ErrStore)
	}
	return items, nil
}

func (s *MongoClothing) Replace(ctx context.Context, item *models.Clothing) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("replace clothing %s: %v: %w", item.ID.Hex(), err, errs.ErrStore)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("clothing %s: %w", item.ID.Hex(), errs.ErrNotFound)
	}
	return nil
}

func (s *MongoClothing) SetLastWorn(ctx context.Context, id primitive.ObjectID, worn time.Time) (*models.Clothing, error) {
	after := options.After
	var item models.Clothing
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_worn": worn}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
		}
		return nil, fmt.Errorf("mark clothing %s worn: %v: %w", id.Hex(), err, errs.ErrStore)
	}
	return &item, nil
}

func (s *MongoClothing) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete clothing %s: %v: %w", id.Hex(), err, errs.ErrStore)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
	}
	return nil
}
