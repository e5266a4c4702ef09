package model

import "time"

type InventoryItem struct {
	DTO
	RestaurantID  uint       `gorm:"index" json:"restaurantId"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CurrentStock  float64    `json:"currentStock"`
	Unit          string     `json:"unit"`
	ReorderPoint  float64    `json:"reorderPoint"`
	CostPerUnit   float64    `json:"costPerUnit"`
	Supplier      string     `json:"supplier"`
	LastRestocked *time.Time `json:"lastRestocked"`
	AutoDeduct    bool       `json:"autoDeduct"`
}

func (i *InventoryItem) IsLow() bool {
	return i.CurrentStock <= i.ReorderPoint
}

type InventoryInput struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Category     string  `json:"category" validate:"max=60"`
	CurrentStock float64 `json:"currentStock" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required,max=20"`
	ReorderPoint float64 `json:"reorderPoint" validate:"gte=0"`
	CostPerUnit  float64 `json:"costPerUnit" validate:"gte=0"`
	Supplier     string  `json:"supplier" validate:"max=120"`
	AutoDeduct   *bool   `json:"autoDeduct"`
}

type UpdateInventoryInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=120"`
	Category     *string  `json:"category" validate:"omitempty,max=60"`
	CurrentStock *float64 `json:"currentStock" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit" validate:"omitempty,max=20"`
	ReorderPoint *float64 `json:"reorderPoint" validate:"omitempty,gte=0"`
	CostPerUnit  *float64 `json:"costPerUnit" validate:"omitempty,gte=0"`
	Supplier     *string  `json:"supplier" validate:"omitempty,max=120"`
	AutoDeduct   *bool    `json:"autoDeduct"`
}

type RestockInput struct {
	Quantity    float64  `json:"quantity" validate:"required,gt=0"`
	CostPerUnit *float64 `json:"costPerUnit" validate:"omitempty,gte=0"`
}
