package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientCRUD(t *testing.T) {
	db := getTestDB(t)
	svc := NewClientService(db, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	created, err := svc.Create(ctx, ClientInput{
		Name:    "Client " + suffix,
		Email:   fmt.Sprintf("crud-%s@example.com", suffix),
		CPF:     suffix[:8] + "010",
		Address: "Rua Exemplo, 100",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM clients WHERE id = ?", created.ID) })

	_, err = svc.Create(ctx, ClientInput{
		Name:  "Dup",
		Email: created.Email,
		CPF:   suffix[:8] + "011",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(ctx, ClientInput{
		Name:  "Dup",
		Email: fmt.Sprintf("crud2-%s@example.com", suffix),
		CPF:   created.CPF,
	})
	require.ErrorIs(t, err, ErrCPFTaken)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, loaded.Email)

	newAddress := "Rua Nova, 200"
	updated, err := svc.Update(ctx, created.ID, ClientUpdateInput{Address: &newAddress})
	require.NoError(t, err)
	assert.Equal(t, newAddress, updated.Address)
	assert.Equal(t, created.Email, updated.Email)

	listed, err := svc.List(ctx, ClientFilters{Email: created.Email})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrClientNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrClientNotFound)
}

func TestCatalogCRUD(t *testing.T) {
	db := getTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]

	category, err := svc.CreateCategory(ctx, "Cat-"+suffix)
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = ?", category.ID) })

	_, err = svc.CreateCategory(ctx, "Cat-"+suffix)
	require.ErrorIs(t, err, ErrNameTaken)

	renamed, err := svc.UpdateCategory(ctx, category.ID, "Cat2-"+suffix)
	require.NoError(t, err)
	assert.Equal(t, "Cat2-"+suffix, renamed.Name)

	size, err := svc.CreateSize(ctx, "S-"+suffix, "Small")
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM sizes WHERE id = ?", size.ID) })

	long := "Extra Small"
	updatedSize, err := svc.UpdateSize(ctx, size.ID, nil, &long)
	require.NoError(t, err)
	assert.Equal(t, "S-"+suffix, updatedSize.Name)
	assert.Equal(t, long, updatedSize.LongName)

	gender, err := svc.CreateGender(ctx, "G-"+suffix, "Generic")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGender(ctx, gender.ID))
	_, err = svc.GetGender(ctx, gender.ID)
	require.ErrorIs(t, err, ErrGenderNotFound)

	_, err = svc.GetCategory(ctx, 999999999)
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductCRUD(t *testing.T) {
	db := getTestDB(t)
	catalog := NewCatalogService(db, zap.NewNop())
	svc := NewProductService(db, zap.NewNop())
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	category, err := catalog.CreateCategory(ctx, "PCat-"+suffix)
	require.NoError(t, err)
	size, err := catalog.CreateSize(ctx, "PS-"+suffix, "Medium")
	require.NoError(t, err)
	gender, err := catalog.CreateGender(ctx, "PG-"+suffix, "Unisex")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id = ?", category.ID)
		db.Exec("DELETE FROM sizes WHERE id = ?", size.ID)
		db.Exec("DELETE FROM genders WHERE id = ?", gender.ID)
	})

	input := ProductInput{
		Name:        "Prod-" + suffix,
		Description: "A product",
		Price:       mustDecimal(t, "99.90"),
		Inventory:   5,
		SizeID:      size.ID,
		CategoryID:  category.ID,
		GenderID:    gender.ID,
		Images: []ProductImageInput{
			{URL: "https://img.example.com/1.jpg", IsMain: true},
		},
	}

	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM product_images WHERE product_id = ?", created.ID)
		db.Exec("DELETE FROM products WHERE id = ?", created.ID)
	})
	require.Len(t, created.Images, 1)

	_, err = svc.Create(ctx, input)
	require.ErrorIs(t, err, ErrNameTaken)

	badRef := input
	badRef.Name = "Prod2-" + suffix
	badRef.SizeID = 999999999
	_, err = svc.Create(ctx, badRef)
	require.ErrorIs(t, err, ErrSizeNotFound)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Price.Equal(mustDecimal(t, "99.90")))

	// Replacing the image set drops the old images.
	updated, err := svc.Update(ctx, created.ID, ProductUpdateInput{
		Images: []ProductImageInput{
			{URL: "https://img.example.com/2.jpg"},
			{URL: "https://img.example.com/3.jpg", IsMain: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)

	available, err := svc.List(ctx, ProductFilters{CategoryID: category.ID, AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)

	zero := 0
	_, err = svc.Update(ctx, created.ID, ProductUpdateInput{Inventory: &zero})
	require.NoError(t, err)

	available, err = svc.List(ctx, ProductFilters{CategoryID: category.ID, AvailableOnly: true})
	require.NoError(t, err)
	assert.Empty(t, available)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
