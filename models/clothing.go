package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clothing represents a single wardrobe item, exclusively owned by one user.
// LastWorn is nil for an item that has never been worn; that is distinct
// from any real date.
type Clothing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	Brand     string             `bson:"brand" json:"brand"`
	Category  string             `bson:"category" json:"category"`
	File      string             `bson:"file,omitempty" json:"file,omitempty"` // S3 object key; presigned on read
	LastWorn  *time.Time         `bson:"last_worn" json:"last_worn"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	User      primitive.ObjectID `bson:"user" json:"user"`
}
