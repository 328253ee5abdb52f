package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
)

// MongoOutfits implements OutfitStore over the outfits collection.
type MongoOutfits struct {
	col *mongo.Collection
}

func (s *MongoOutfits) Insert(ctx context.Context, outfit *models.Outfit) (*models.Outfit, error) {
	res, err := s.col.InsertOne(ctx, outfit)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("outfit name %q: %w", outfit.Name, errs.ErrConflict)
		}
		return nil, fmt.Errorf("insert outfit: %v: %w", err, errs.ErrStore)
	}
	outfit.ID = res.InsertedID.(primitive.ObjectID)
	return outfit, nil
}

func (s *MongoOutfits) FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Outfit, error) {
	cursor, err := s.col.Find(ctx, bson.M{"created_by": userID})
	if err != nil {
		return nil, fmt.Errorf("list outfits for user %s: %v: %w", userID.Hex(), err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	var outfits []models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		return nil, fmt.Errorf("decode outfits for user %s: %v: %w", userID.Hex(), err, errs.ErrStore)
	}
	return outfits, nil
}

func (s *MongoOutfits) RemoveItemFromAll(ctx context.Context, clothingID primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"clothing_items": clothingID},
		bson.M{"$pull": bson.M{"clothing_items": clothingID}},
	)
	if err != nil {
		return fmt.Errorf("remove clothing %s from outfits: %v: %w", clothingID.Hex(), err, errs.ErrStore)
	}

	// An outfit emptied by the pull would violate the 1-3 item rule; drop it.
	_, err = s.col.DeleteMany(ctx, bson.M{"clothing_items": bson.M{"$size": 0}})
	if err != nil {
		return fmt.Errorf("delete empty outfits: %v: %w", err, errs.ErrStore)
	}
	return nil
}
