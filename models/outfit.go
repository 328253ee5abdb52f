package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outfit groups 1 to 3 existing clothing items under a name that is unique
// across all outfits. Outfits reference clothing items without taking
// ownership; the same item may appear in any number of outfits.
type Outfit struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	ClothingItems []primitive.ObjectID `bson:"clothing_items" json:"clothing_items"`
	CreatedBy     primitive.ObjectID   `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	LastWorn      *time.Time           `bson:"last_worn,omitempty" json:"last_worn,omitempty"`
}
