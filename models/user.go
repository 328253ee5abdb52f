package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user and the clothing items they own.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username  string               `bson:"username" json:"username"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"` // Password hash is not returned in JSON
	Clothes   []primitive.ObjectID `bson:"clothes" json:"clothes"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}
