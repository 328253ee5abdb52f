package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/store"
)

// Catalog provides CRUD over clothing items.
type Catalog struct {
	users    store.UserStore
	clothing store.ClothingStore
	outfits  store.OutfitStore
	now      func() time.Time
}

func NewCatalog(users store.UserStore, clothing store.ClothingStore, outfits store.OutfitStore) *Catalog {
	return &Catalog{users: users, clothing: clothing, outfits: outfits, now: time.Now}
}

// CreateClothingInput holds the attributes of a new clothing item. FileKey is
// the object-store key of the uploaded photo.
type CreateClothingInput struct {
	Name     string
	Size     string
	Color    string
	Brand    string
	Category string
	FileKey  string
}

// UpdateClothingInput holds a partial field update; nil fields are untouched.
type UpdateClothingInput struct {
	Name     *string `json:"name"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
	Brand    *string `json:"brand"`
	Category *string `json:"category"`
}

func validateClothing(item *models.Clothing) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("name is required: %w", errs.ErrValidation)
	case item.Size == "":
		return fmt.Errorf("size is required: %w", errs.ErrValidation)
	case item.Color == "":
		return fmt.Errorf("color is required: %w", errs.ErrValidation)
	case item.Brand == "":
		return fmt.Errorf("brand is required: %w", errs.ErrValidation)
	case item.Category == "":
		return fmt.Errorf("category is required: %w", errs.ErrValidation)
	}
	return nil
}

// Create persists a new clothing item for the given owner and appends its id
// to the owner's clothes list. The two writes are not transactional; a crash
// in between leaves an item the owner document does not reference, which
// reads tolerate because listing queries the item's own owner field.
func (c *Catalog) Create(ctx context.Context, ownerID string, input CreateClothingInput) (*models.Clothing, error) {
	owner, err := parseObjectID(ownerID)
	if err != nil {
		return nil, err
	}
	if input.FileKey == "" {
		return nil, fmt.Errorf("no file uploaded: %w", errs.ErrValidation)
	}

	item := &models.Clothing{
		Name:      input.Name,
		Size:      input.Size,
		Color:     input.Color,
		Brand:     input.Brand,
		Category:  input.Category,
		File:      input.FileKey,
		CreatedAt: c.now(),
		User:      owner,
	}
	if err := validateClothing(item); err != nil {
		return nil, err
	}

	if _, err := c.users.FindByID(ctx, owner); err != nil {
		return nil, err
	}

	item, err = c.clothing.Insert(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := c.users.AppendClothing(ctx, owner, item.ID); err != nil {
		log.Printf("clothing %s created but owner %s back-reference failed: %v", item.ID.Hex(), ownerID, err)
		return nil, err
	}
	return item, nil
}

// ListByOwner returns every clothing item the user owns. An empty wardrobe is
// a successful empty result, not an error.
func (c *Catalog) ListByOwner(ctx context.Context, userID string) ([]models.Clothing, error) {
	owner, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	items, err := c.clothing.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Clothing{}
	}
	return items, nil
}

func (c *Catalog) GetByID(ctx context.Context, id string) (*models.Clothing, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return c.clothing.FindByID(ctx, objID)
}

// Update applies a partial field update and re-validates the merged result.
func (c *Catalog) Update(ctx context.Context, id string, input UpdateClothingInput) (*models.Clothing, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	item, err := c.clothing.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if err := validateClothing(item); err != nil {
		return nil, err
	}

	if err := c.clothing.Replace(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkWorn stamps the item's last-worn time with the current time.
func (c *Catalog) MarkWorn(ctx context.Context, id string) (*models.Clothing, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return c.clothing.SetLastWorn(ctx, objID, c.now())
}

// Delete removes the item, drops it from the owner's clothes list and pulls
// it out of any outfit that references it.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	objID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	item, err := c.clothing.FindByID(ctx, objID)
	if err != nil {
		return err
	}

	if err := c.clothing.Delete(ctx, objID); err != nil {
		return err
	}
	if err := c.users.RemoveClothing(ctx, item.User, objID); err != nil {
		log.Printf("clothing %s deleted but owner %s still references it: %v", id, item.User.Hex(), err)
		return err
	}
	if err := c.outfits.RemoveItemFromAll(ctx, objID); err != nil {
		log.Printf("clothing %s deleted but outfit cleanup failed: %v", id, err)
		return err
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, errs.ErrValidation)
	}
	return objID, nil
}
