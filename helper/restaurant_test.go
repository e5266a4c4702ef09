package helper

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantSlugIsUnique(t *testing.T) {
	f := newFixture(t)
	base := f.restaurant.Slug
	assert.True(t, strings.HasPrefix(base, "luigi"))

	second := model.User{Name: "Second", Email: "second@example.com", IsActive: true}
	require.NoError(t, f.db.Create(&second).Error)
	copycat, err := CreateRestaurant(f.db, second.ID, model.CreateRestaurantInput{Name: "Luigi's Place", CuisineType: "italian"})
	require.NoError(t, err)
	assert.Equal(t, base+"-1", copycat.Slug)

	_, err = CreateRestaurant(f.db, second.ID, model.CreateRestaurantInput{Name: "Another", CuisineType: "italian"})
	assert.ErrorIs(t, err, ErrRestaurantExists)

	// renaming to the same name keeps the slug
	same := "Luigi's Place"
	require.NoError(t, UpdateRestaurant(f.db, f.restaurant, model.UpdateRestaurantInput{Name: &same}))
	assert.Equal(t, base, f.restaurant.Slug)
}

func TestFindPublicRestaurantBySlugOrID(t *testing.T) {
	f := newFixture(t)

	bySlug, err := FindPublicRestaurant(f.db, f.restaurant.Slug)
	require.NoError(t, err)
	byID, err := FindPublicRestaurant(f.db, fmt.Sprint(f.restaurant.ID))
	require.NoError(t, err)
	assert.Equal(t, bySlug.ID, byID.ID)

	_, err = FindPublicRestaurant(f.db, "nowhere")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestQRCodeLifecycle(t *testing.T) {
	f := newFixture(t)

	qr, err := CreateQRCode(f.db, f.restaurant, model.QRCodeInput{TableNumber: "A 1", TableName: "Patio corner"})
	require.NoError(t, err)
	assert.Equal(t, 4, qr.SeatingCapacity)
	assert.Equal(t, "indoor", qr.Location)
	assert.True(t, strings.HasSuffix(qr.OrderingURL, "/r/"+f.restaurant.Slug+"?table=A+1"))

	_, err = CreateQRCode(f.db, f.restaurant, model.QRCodeInput{TableNumber: "A 1", TableName: "Dup"})
	assert.ErrorIs(t, err, ErrTableExists)

	scanned, err := RecordScan(f.db, f.restaurant.ID, "A 1", testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, scanned.TotalScans)

	png, err := QRCodePNG(qr, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	inactive := false
	_, err = UpdateQRCode(f.db, f.restaurant.ID, qr.ID, model.UpdateQRCodeInput{IsActive: &inactive})
	require.NoError(t, err)
	_, err = RecordScan(f.db, f.restaurant.ID, "A 1", testNow)
	assert.ErrorIs(t, err, ErrQRCodeNotFound)

	require.NoError(t, DeleteQRCode(f.db, f.restaurant.ID, qr.ID))
	assert.ErrorIs(t, DeleteQRCode(f.db, f.restaurant.ID, qr.ID), ErrQRCodeNotFound)
}
