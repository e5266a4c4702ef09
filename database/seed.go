package database

import (
	"errors"
	"fmt"

	"restaurant_manager/logger"
	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	seedOwnerEmail    = "owner@demo.local"
	seedOwnerPassword = "demo1234"
)

// SeedData inserts a demo owner, restaurant, menu and loyalty program. It is a no-op when the owner exists.
func SeedData(db *gorm.DB) error {
	log := logger.WithComponent("seed")

	var existing model.User
	err := db.Where("email = ?", seedOwnerEmail).First(&existing).Error
	if err == nil {
		log.Info().Str("email", seedOwnerEmail).Msg("demo data already present")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedOwnerPassword), 10)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		owner := model.User{Name: "Demo Owner", Email: seedOwnerEmail, Password: string(hash), IsActive: true}
		if err := tx.Create(&owner).Error; err != nil {
			return fmt.Errorf("seed owner: %w", err)
		}

		restaurant := model.Restaurant{
			OwnerID:         owner.ID,
			Name:            "Demo Pizzeria",
			Slug:            slug.Make("Demo Pizzeria"),
			Description:     "Wood fired pizza and fresh pasta",
			CuisineType:     "pizza",
			Contact:         model.Contact{Phone: "5550100", Email: seedOwnerEmail, City: "Springfield"},
			Branding:        model.DefaultBranding(),
			IsActive:        true,
			OrderingEnabled: true,
			PaymentSettings: model.PaymentSettings{
				TaxRate:         0.10,
				DeliveryFee:     5.99,
				Currency:        "USD",
				AcceptedMethods: datatypes.JSONSlice[string]{"cash-on-delivery", "card"},
			},
			OpeningHours: datatypes.NewJSONType(model.OpeningHours{
				"monday":    {Open: "10:00", Close: "22:00"},
				"tuesday":   {Open: "10:00", Close: "22:00"},
				"wednesday": {Open: "10:00", Close: "22:00"},
				"thursday":  {Open: "10:00", Close: "22:00"},
				"friday":    {Open: "10:00", Close: "23:00"},
				"saturday":  {Open: "11:00", Close: "23:00"},
				"sunday":    {Closed: true},
			}),
		}
		if err := tx.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("seed restaurant: %w", err)
		}

		dough := model.InventoryItem{RestaurantID: restaurant.ID, Name: "Pizza dough", Category: "bakery", CurrentStock: 50, Unit: "ball", ReorderPoint: 10, CostPerUnit: 0.8, AutoDeduct: true}
		if err := tx.Create(&dough).Error; err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}

		items := []model.MenuItem{
			{
				RestaurantID: restaurant.ID, Name: "Margherita", Price: 10, Category: "Pizza", IsAvailable: true, PreparationTime: 15,
				Modifiers: datatypes.JSONSlice[model.ModifierGroup]{
					{Name: "Extras", MaxSelections: 3, Options: []model.ModifierOption{{Name: "Extra cheese", PriceAdjustment: 1.5}, {Name: "Basil", PriceAdjustment: 0.5}}},
				},
				Ingredients: datatypes.JSONSlice[model.Ingredient]{{InventoryItemID: &dough.ID, Name: "Pizza dough", Quantity: 1, Unit: "ball"}},
			},
			{RestaurantID: restaurant.ID, Name: "Garlic bread", Price: 5, Category: "Sides", IsAvailable: true, PreparationTime: 8},
			{RestaurantID: restaurant.ID, Name: "Tiramisu", Price: 6.5, Category: "Desserts", IsAvailable: true, PreparationTime: 5},
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}

		program := model.LoyaltyProgram{RestaurantID: restaurant.ID, IsActive: true}
		if err := tx.Create(&program).Error; err != nil {
			return fmt.Errorf("seed loyalty program: %w", err)
		}

		log.Info().Str("email", seedOwnerEmail).Uint("restaurant_id", restaurant.ID).Msg("demo data seeded")
		return nil
	})
}
