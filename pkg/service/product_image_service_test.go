package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/models"
)

func TestProductImageCRUD(t *testing.T) {
	db := getTestDB(t)
	fix := seedOrderFixture(t, db)
	svc := NewProductImageService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ImageInput{
		ProductID: uuid.NewString(),
		URL:       "https://img.example.com/none.jpg",
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	created, err := svc.Create(ctx, ImageInput{
		ProductID:   fix.product1.ID,
		URL:         "https://img.example.com/front.jpg",
		Description: "front view",
		IsMain:      true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec("DELETE FROM product_images WHERE product_id = ?", fix.product1.ID) })

	second, err := svc.Create(ctx, ImageInput{
		ProductID: fix.product1.ID,
		URL:       "https://img.example.com/back.jpg",
	})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "front view", loaded.Description)
	assert.True(t, loaded.IsMain)

	byProduct, err := svc.List(ctx, ImageFilters{ProductID: fix.product1.ID})
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	otherProduct, err := svc.List(ctx, ImageFilters{ProductID: fix.product2.ID})
	require.NoError(t, err)
	assert.Empty(t, otherProduct)

	newURL := "https://img.example.com/front-v2.jpg"
	demoted := false
	updated, err := svc.Update(ctx, created.ID, ImageUpdateInput{URL: &newURL, IsMain: &demoted})
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.URL)
	assert.False(t, updated.IsMain)
	assert.Equal(t, "front view", updated.Description)

	require.NoError(t, svc.Delete(ctx, second.ID))
	_, err = svc.Get(ctx, second.ID)
	require.ErrorIs(t, err, ErrImageNotFound)

	require.ErrorIs(t, svc.Delete(ctx, second.ID), ErrImageNotFound)

	// Images created here are also visible through the product's preload.
	var product models.Product
	require.NoError(t, db.Preload("Images").First(&product, "id = ?", fix.product1.ID).Error)
	require.Len(t, product.Images, 1)
	assert.Equal(t, newURL, product.Images[0].URL)
}

func TestProductImageUpdate_NotFound(t *testing.T) {
	db := getTestDB(t)
	svc := NewProductImageService(db, zap.NewNop())

	url := "https://img.example.com/x.jpg"
	_, err := svc.Update(context.Background(), uuid.NewString(), ImageUpdateInput{URL: &url})
	require.ErrorIs(t, err, ErrImageNotFound)
}
