package helper

import (
	"testing"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Saturday noon.
var testNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	owner      model.User
	restaurant *model.Restaurant
	pizza      *model.MenuItem
	dough      *model.InventoryItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	f := &fixture{db: db}
	f.owner = model.User{Name: "Owner", Email: "owner@example.com", IsActive: true}
	require.NoError(t, db.Create(&f.owner).Error)

	f.restaurant, err = CreateRestaurant(db, f.owner.ID, model.CreateRestaurantInput{Name: "Luigi's Place", CuisineType: "italian"})
	require.NoError(t, err)

	f.dough, err = CreateInventoryItem(db, f.restaurant.ID, model.InventoryInput{Name: "Dough", CurrentStock: 3, Unit: "ball", ReorderPoint: 1})
	require.NoError(t, err)

	f.pizza, err = CreateMenuItem(db, f.restaurant.ID, model.CreateMenuItemInput{
		Name:     "Margherita",
		Price:    10,
		Category: "Pizza",
		Modifiers: []model.ModifierGroup{
			{Name: "Extras", Options: []model.ModifierOption{{Name: "Extra cheese", PriceAdjustment: 1.5}}},
		},
		Ingredients: []model.Ingredient{{InventoryItemID: &f.dough.ID, Name: "Dough", Quantity: 1}},
	})
	require.NoError(t, err)
	return f
}

// orderInput is two Margheritas with extra cheese for delivery: subtotal 23.00.
func (f *fixture) orderInput(mutate ...func(*model.PlaceOrderInput)) model.PlaceOrderInput {
	in := model.PlaceOrderInput{
		RestaurantID: f.restaurant.ID,
		Customer:     model.OrderCustomerInput{Name: "Ana", Phone: "5550001", Email: "Ana@Example.com"},
		Items: []model.PlaceOrderItemInput{
			{MenuItemID: f.pizza.ID, Quantity: 2, Modifiers: []model.OrderItemModifier{{Name: "Extra cheese"}}},
		},
		OrderType: constants.ORDER_TYPE_DELIVERY,
	}
	for _, m := range mutate {
		m(&in)
	}
	return in
}

func (f *fixture) placeOrder(t *testing.T, at time.Time, mutate ...func(*model.PlaceOrderInput)) *model.PlaceOrderResult {
	t.Helper()
	res, err := PlaceOrder(f.db, f.orderInput(mutate...), at)
	require.NoError(t, err)
	return res
}

func (f *fixture) customer(t *testing.T) model.Customer {
	t.Helper()
	var c model.Customer
	require.NoError(t, f.db.Where("restaurant_id = ? AND phone = ?", f.restaurant.ID, "5550001").First(&c).Error)
	return c
}

func (f *fixture) otherRestaurant(t *testing.T) *model.Restaurant {
	t.Helper()
	other := model.User{Name: "Other", Email: "other@example.com", IsActive: true}
	require.NoError(t, f.db.Create(&other).Error)
	r, err := CreateRestaurant(f.db, other.ID, model.CreateRestaurantInput{Name: "Taco Town", CuisineType: "mexican"})
	require.NoError(t, err)
	return r
}
