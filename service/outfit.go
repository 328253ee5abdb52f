package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/store"
)

// MaxOutfitItems is the most clothing items a single outfit may reference.
const MaxOutfitItems = 3

// Composer creates and lists outfits.
type Composer struct {
	users    store.UserStore
	clothing store.ClothingStore
	outfits  store.OutfitStore
	now      func() time.Time
}

func NewComposer(users store.UserStore, clothing store.ClothingStore, outfits store.OutfitStore) *Composer {
	return &Composer{users: users, clothing: clothing, outfits: outfits, now: time.Now}
}

// ExpandedOutfit is an outfit with its clothing references resolved.
type ExpandedOutfit struct {
	models.Outfit
	Items []models.Clothing `json:"items"`
}

// Create validates and persists a new outfit. Every referenced clothing item
// must exist, the creator must exist and the name must be unused.
func (c *Composer) Create(ctx context.Context, name string, itemIDs []string, createdBy string) (*ExpandedOutfit, error) {
	if name == "" || createdBy == "" {
		return nil, fmt.Errorf("name, clothing items and creator are required: %w", errs.ErrValidation)
	}
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("an outfit needs at least one clothing item: %w", errs.ErrValidation)
	}
	if len(itemIDs) > MaxOutfitItems {
		return nil, fmt.Errorf("an outfit can contain up to %d clothing items only: %w", MaxOutfitItems, errs.ErrValidation)
	}

	creator, err := parseObjectID(createdBy)
	if err != nil {
		return nil, err
	}
	if _, err := c.users.FindByID(ctx, creator); err != nil {
		return nil, err
	}

	itemObjIDs := make([]primitive.ObjectID, 0, len(itemIDs))
	items := make([]models.Clothing, 0, len(itemIDs))
	for _, id := range itemIDs {
		objID, err := parseObjectID(id)
		if err != nil {
			return nil, err
		}
		item, err := c.clothing.FindByID(ctx, objID)
		if err != nil {
			return nil, err
		}
		itemObjIDs = append(itemObjIDs, objID)
		items = append(items, *item)
	}

	outfit := &models.Outfit{
		Name:          name,
		ClothingItems: itemObjIDs,
		CreatedBy:     creator,
		CreatedAt:     c.now(),
	}
	outfit, err = c.outfits.Insert(ctx, outfit)
	if err != nil {
		return nil, err
	}
	return &ExpandedOutfit{Outfit: *outfit, Items: items}, nil
}

// ListByCreator returns the user's outfits with items expanded. No outfits is
// a successful empty result.
func (c *Composer) ListByCreator(ctx context.Context, userID string) ([]ExpandedOutfit, error) {
	creator, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	outfits, err := c.outfits.FindByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}

	expanded := make([]ExpandedOutfit, 0, len(outfits))
	for _, o := range outfits {
		items := make([]models.Clothing, 0, len(o.ClothingItems))
		for _, itemID := range o.ClothingItems {
			item, err := c.clothing.FindByID(ctx, itemID)
			if err != nil {
				// A dangling reference is cleaned up on clothing delete,
				// but tolerate one rather than failing the whole list.
				continue
			}
			items = append(items, *item)
		}
		expanded = append(expanded, ExpandedOutfit{Outfit: o, Items: items})
	}
	return expanded, nil
}
