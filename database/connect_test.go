package database

import (
	"testing"

	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemoryIsolated(t *testing.T) {
	a, err := OpenInMemory()
	require.NoError(t, err)
	b, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, a.Create(&model.User{Name: "a", Email: "a@example.com"}).Error)

	var count int64
	require.NoError(t, b.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedDataIdempotent(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, SeedData(db))
	require.NoError(t, SeedData(db))

	var restaurants int64
	db.Model(&model.Restaurant{}).Count(&restaurants)
	assert.EqualValues(t, 1, restaurants)

	var program model.LoyaltyProgram
	require.NoError(t, db.First(&program).Error)
	require.Len(t, program.Tiers, 4)
	assert.Equal(t, "Bronze", program.Tiers[0].Name)
	assert.Equal(t, 3000, program.Tiers[3].MinimumPoints)

	var item model.MenuItem
	require.NoError(t, db.Where("name = ?", "Margherita").First(&item).Error)
	price, ok := item.ModifierPrice("Extra cheese")
	assert.True(t, ok)
	assert.Equal(t, 1.5, price)
}
