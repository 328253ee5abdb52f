package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/virtuwear/wardrobe-backend/errs"
	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/store"
)

func newTestComposer(t *testing.T) (*Composer, *Catalog, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewComposer(mem.Users, mem.Clothing, mem.Outfits),
		NewCatalog(mem.Users, mem.Clothing, mem.Outfits),
		mem
}

func seedClothing(t *testing.T, catalog *Catalog, owner *models.User, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		input := validInput()
		input.Name = fmt.Sprintf("Item %d", i)
		item, err := catalog.Create(context.Background(), owner.ID.Hex(), input)
		require.NoError(t, err)
		ids = append(ids, item.ID.Hex())
	}
	return ids
}

func TestCreateOutfit_ItemCountBounds(t *testing.T) {
	composer, catalog, mem := newTestComposer(t)
	ctx := context.Background()
	owner := seedUser(t, mem, "alice")
	ids := seedClothing(t, catalog, owner, 4)

	_, err := composer.Create(ctx, "Nothing", nil, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrValidation, "zero items")

	_, err = composer.Create(ctx, "Everything", ids, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrValidation, "four items")

	for n := 1; n <= 3; n++ {
		outfit, err := composer.Create(ctx, fmt.Sprintf("Look %d", n), ids[:n], owner.ID.Hex())
		require.NoError(t, err, "%d items", n)
		require.Len(t, outfit.Items, n)
		for i, item := range outfit.Items {
			assert.Equal(t, ids[i], item.ID.Hex(), "expanded items match the requested ids")
		}
	}
}

func TestCreateOutfit_Validation(t *testing.T) {
	composer, catalog, mem := newTestComposer(t)
	ctx := context.Background()
	owner := seedUser(t, mem, "alice")
	ids := seedClothing(t, catalog, owner, 1)

	_, err := composer.Create(ctx, "", ids, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrValidation, "missing name")

	_, err = composer.Create(ctx, "Look", ids, "")
	assert.ErrorIs(t, err, errs.ErrValidation, "missing creator")

	_, err = composer.Create(ctx, "Look", []string{"not-an-id"}, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrValidation, "malformed item id")
}

func TestCreateOutfit_MissingReferences(t *testing.T) {
	composer, catalog, mem := newTestComposer(t)
	ctx := context.Background()
	owner := seedUser(t, mem, "alice")
	ids := seedClothing(t, catalog, owner, 1)

	_, err := composer.Create(ctx, "Look", ids, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound, "absent creator")

	_, err = composer.Create(ctx, "Look", []string{primitive.NewObjectID().Hex()}, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound, "absent clothing item")
}

func TestCreateOutfit_NameConflict(t *testing.T) {
	composer, catalog, mem := newTestComposer(t)
	ctx := context.Background()
	owner := seedUser(t, mem, "alice")
	ids := seedClothing(t, catalog, owner, 1)

	_, err := composer.Create(ctx, "Casual Summer Look", ids, owner.ID.Hex())
	require.NoError(t, err)

	_, err = composer.Create(ctx, "Casual Summer Look", ids, owner.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestListByCreator(t *testing.T) {
	composer, catalog, mem := newTestComposer(t)
	ctx := context.Background()
	owner := seedUser(t, mem, "alice")
	other := seedUser(t, mem, "bob")
	ids := seedClothing(t, catalog, owner, 2)

	// Empty is a successful empty result, not an error.
	outfits, err := composer.ListByCreator(ctx, other.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, outfits)

	_, err = composer.Create(ctx, "Casual", ids, owner.ID.Hex())
	require.NoError(t, err)

	outfits, err = composer.ListByCreator(ctx, owner.ID.Hex())
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Len(t, outfits[0].Items, 2, "items come back expanded")

	_, err = composer.ListByCreator(ctx, "bogus")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
