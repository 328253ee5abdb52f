package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
)

// MongoUsers implements UserStore over the users collection.
type MongoUsers struct {
	col *mongo.Collection
}

func (s *MongoUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("username or email: %w", errs.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %v: %w", err, errs.ErrStore)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find user %s: %v: %w", id.Hex(), err, errs.ErrStore)
	}
	return &user, nil
}

func (s *MongoUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}

	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find user %q: %v: %w", login, err, errs.ErrStore)
	}
	return &user, nil
}

func (s *MongoUsers) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %v: %w", err, errs.ErrStore)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %v: %w", err, errs.ErrStore)
	}
	return users, nil
}

func (s *MongoUsers) AppendClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"clothes": clothingID}},
	)
	if err != nil {
		return fmt.Errorf("append clothing %s to user %s: %v: %w", clothingID.Hex(), userID.Hex(), err, errs.ErrStore)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID.Hex(), errs.ErrNotFound)
	}
	return nil
}

func (s *MongoUsers) RemoveClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"clothes": clothingID}},
	)
	if err != nil {
		return fmt.Errorf("remove clothing %s from user %s: %v: %w", clothingID.Hex(), userID.Hex(), err, errs.ErrStore)
	}
	return nil
}
