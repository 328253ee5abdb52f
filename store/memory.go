package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
)

// Memory is an in-memory implementation of the store interfaces, used by
// tests. It enforces the same uniqueness rules as the Mongo stores.
type Memory struct {
	Users    *MemoryUsers
	Clothing *MemoryClothing
	Outfits  *MemoryOutfits
}

func NewMemory() *Memory {
	return &Memory{
		Users:    &MemoryUsers{users: map[primitive.ObjectID]*models.User{}},
		Clothing: &MemoryClothing{items: map[primitive.ObjectID]*models.Clothing{}},
		Outfits:  &MemoryOutfits{outfits: map[primitive.ObjectID]*models.Outfit{}},
	}
}

type MemoryUsers struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func (s *MemoryUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, fmt.Errorf("username or email: %w", errs.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (s *MemoryUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), errs.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", login, errs.ErrNotFound)
}

func (s *MemoryUsers) All(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *MemoryUsers) AppendClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID.Hex(), errs.ErrNotFound)
	}
	u.Clothes = append(u.Clothes, clothingID)
	return nil
}

func (s *MemoryUsers) RemoveClothing(ctx context.Context, userID, clothingID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	kept := u.Clothes[:0]
	for _, id := range u.Clothes {
		if id != clothingID {
			kept = append(kept, id)
		}
	}
	u.Clothes = kept
	return nil
}

type MemoryClothing struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Clothing
}

func (s *MemoryClothing) Insert(ctx context.Context, item *models.Clothing) (*models.Clothing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	cp := *item
	s.items[item.ID] = &cp
	return item, nil
}

func (s *MemoryClothing) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clothing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryClothing) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Clothing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []models.Clothing
	for _, item := range s.items {
		if item.User == ownerID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *MemoryClothing) Replace(ctx context.Context, item *models.Clothing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("clothing %s: %w", item.ID.Hex(), errs.ErrNotFound)
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *MemoryClothing) SetLastWorn(ctx context.Context, id primitive.ObjectID, worn time.Time) (*models.Clothing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
	}
	item.LastWorn = &worn
	cp := *item
	return &cp, nil
}

func (s *MemoryClothing) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("clothing %s: %w", id.Hex(), errs.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

type MemoryOutfits struct {
	mu      sync.RWMutex
	outfits map[primitive.ObjectID]*models.Outfit
}

func (s *MemoryOutfits) Insert(ctx context.Context, outfit *models.Outfit) (*models.Outfit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.outfits {
		if o.Name == outfit.Name {
			return nil, fmt.Errorf("outfit name %q: %w", outfit.Name, errs.ErrConflict)
		}
	}
	outfit.ID = primitive.NewObjectID()
	cp := *outfit
	s.outfits[outfit.ID] = &cp
	return outfit, nil
}

func (s *MemoryOutfits) FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Outfit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var outfits []models.Outfit
	for _, o := range s.outfits {
		if o.CreatedBy == userID {
			outfits = append(outfits, *o)
		}
	}
	return outfits, nil
}

func (s *MemoryOutfits) RemoveItemFromAll(ctx context.Context, clothingID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, o := range s.outfits {
		kept := o.ClothingItems[:0]
		for _, itemID := range o.ClothingItems {
			if itemID != clothingID {
				kept = append(kept, itemID)
			}
		}
		o.ClothingItems = kept
		if len(o.ClothingItems) == 0 {
			delete(s.outfits, id)
		}
	}
	return nil
}
