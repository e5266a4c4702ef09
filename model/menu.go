package model

import "gorm.io/datatypes"

type ModifierOption struct {
	Name            string  `json:"name" validate:"required"`
	PriceAdjustment float64 `json:"priceAdjustment" validate:"gte=0"`
}

type ModifierGroup struct {
	Name          string           `json:"name" validate:"required"`
	Required      bool             `json:"required"`
	MaxSelections int              `json:"maxSelections" validate:"gte=0"`
	Options       []ModifierOption `json:"options" validate:"dive"`
}

// Ingredient links a menu item to stock. Items with an InventoryItemID are deducted on order placement.
type Ingredient struct {
	InventoryItemID *uint   `json:"inventoryItemId,omitempty"`
	Name            string  `json:"name" validate:"required"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	Unit            string  `json:"unit"`
}

type MenuItem struct {
	DTO
	RestaurantID    uint                               `gorm:"index" json:"restaurantId"`
	Name            string                             `json:"name"`
	Description     string                             `json:"description"`
	Price           float64                            `json:"price"`
	Category        string                             `gorm:"index" json:"category"`
	ImageURL        string                             `json:"imageUrl"`
	IsAvailable     bool                               `json:"isAvailable"`
	PreparationTime int                                `json:"preparationTime"`
	Modifiers       datatypes.JSONSlice[ModifierGroup] `json:"modifiers"`
	Ingredients     datatypes.JSONSlice[Ingredient]    `json:"ingredients"`
}

// ModifierPrice looks up the price adjustment of a named option across all groups.
func (m *MenuItem) ModifierPrice(option string) (float64, bool) {
	for _, group := range m.Modifiers {
		for _, o := range group.Options {
			if o.Name == option {
				return o.PriceAdjustment, true
			}
		}
	}
	return 0, false
}

type CreateMenuItemInput struct {
	Name            string          `json:"name" validate:"required,max=120"`
	Description     string          `json:"description" validate:"max=1000"`
	Price           float64         `json:"price" validate:"gte=0"`
	Category        string          `json:"category" validate:"required,max=60"`
	ImageURL        string          `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable     *bool           `json:"isAvailable"`
	PreparationTime int             `json:"preparationTime" validate:"gte=0"`
	Modifiers       []ModifierGroup `json:"modifiers" validate:"dive"`
	Ingredients     []Ingredient    `json:"ingredients" validate:"dive"`
}

type UpdateMenuItemInput struct {
	Name            *string         `json:"name" validate:"omitempty,max=120"`
	Description     *string         `json:"description" validate:"omitempty,max=1000"`
	Price           *float64        `json:"price" validate:"omitempty,gte=0"`
	Category        *string         `json:"category" validate:"omitempty,max=60"`
	ImageURL        *string         `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable     *bool           `json:"isAvailable"`
	PreparationTime *int            `json:"preparationTime" validate:"omitempty,gte=0"`
	Modifiers       []ModifierGroup `json:"modifiers" validate:"omitempty,dive"`
	Ingredients     []Ingredient    `json:"ingredients" validate:"omitempty,dive"`
}

type MenuFilter struct {
	Category  string `query:"category"`
	Available string `query:"available"`
	Search    string `query:"search"`
}
