// Package store provides persistence for users, clothing and outfits.
// The Mongo implementations live next to an in-memory one used by tests.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/models"
)

// UserStore persists users and the list of clothing ids each user owns.
type UserStore interface {
	// Create inserts a new user. Returns errs.ErrConflict when the
	// username or email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByLogin looks a user up by username or email.
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	AppendClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error
	RemoveClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error
}

// ClothingStore persists clothing documents.
type ClothingStore interface {
	Insert(ctx context.Context, item *models.Clothing) (*models.Clothing, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clothing, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Clothing, error)
	// Replace overwrites the stored document with the given one, matched by id.
	Replace(ctx context.Context, item *models.Clothing) error
	// SetLastWorn atomically sets the last-worn timestamp and returns the
	// updated document.
	SetLastWorn(ctx context.Context, id primitive.ObjectID, worn time.Time) (*models.Clothing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OutfitStore persists outfit documents.
type OutfitStore interface {
	// Insert adds a new outfit. Returns errs.ErrConflict when the name is taken.
	Insert(ctx context.Context, outfit *models.Outfit) (*models.Outfit, error)
	FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Outfit, error)
	// RemoveItemFromAll pulls a clothing id out of every outfit that
	// references it and deletes outfits left with no items.
	RemoveItemFromAll(ctx context.Context, clothingID primitive.ObjectID) error
}
