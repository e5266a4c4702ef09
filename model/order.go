package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderItemModifier struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItem is a snapshot of a menu item at placement time. It is never re-resolved afterwards.
type OrderItem struct {
	ID                  uint                                   `gorm:"primaryKey" json:"id"`
	OrderID             uint                                   `gorm:"index" json:"orderId"`
	MenuItemID          uint                                   `json:"menuItemId"`
	Name                string                                 `json:"name"`
	Price               float64                                `json:"price"`
	Quantity            int                                    `json:"quantity"`
	Category            string                                 `json:"category"`
	Modifiers           datatypes.JSONSlice[OrderItemModifier] `json:"modifiers"`
	SpecialInstructions string                                 `json:"specialInstructions"`
}

// LineTotal is (price + modifiers) * quantity.
func (i OrderItem) LineTotal() float64 {
	unit := i.Price
	for _, m := range i.Modifiers {
		unit += m.Price
	}
	return unit * float64(i.Quantity)
}

type OrderStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index" json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes"`
}

type CustomerSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type Order struct {
	DTO
	OrderNumber        string               `gorm:"uniqueIndex;size:40" json:"orderNumber"`
	RestaurantID       uint                 `gorm:"index;uniqueIndex:idx_order_idempotency" json:"restaurantId"`
	CustomerID         *uint                `gorm:"index" json:"customerId,omitempty"`
	CustomerInfo       CustomerSnapshot     `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items              []OrderItem          `gorm:"foreignKey:OrderID" json:"items"`
	OrderType          string               `json:"orderType"`
	Status             string               `gorm:"index" json:"status"`
	StatusHistory      []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"statusHistory"`
	PaymentMethod      string               `json:"paymentMethod"`
	PaymentStatus      string               `json:"paymentStatus"`
	Subtotal           float64              `json:"subtotal"`
	DeliveryFee        float64              `json:"deliveryFee"`
	Discount           float64              `json:"discount"`
	Tax                float64              `json:"tax"`
	FinalAmount        float64              `json:"finalAmount"`
	EstimatedReadyTime *time.Time           `json:"estimatedReadyTime"`
	ActualReadyTime    *time.Time           `json:"actualReadyTime"`
	DeliveredAt        *time.Time           `json:"deliveredAt"`
	CancelledAt        *time.Time           `json:"cancelledAt"`
	TableNumber        string               `json:"tableNumber"`
	Notes              string               `json:"notes"`
	IdempotencyKey     *string              `gorm:"uniqueIndex:idx_order_idempotency;size:100" json:"-"`
}

// RecalculateTotal applies final = subtotal + deliveryFee + tax - discount.
func (o *Order) RecalculateTotal() {
	o.FinalAmount = RoundMoney(o.Subtotal + o.DeliveryFee + o.Tax - o.Discount)
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.RecalculateTotal()
	return nil
}

// OrderSequence holds the last issued order sequence for a restaurant on a given day (YYYYMMDD).
type OrderSequence struct {
	RestaurantID uint   `gorm:"primaryKey;autoIncrement:false"`
	Day          string `gorm:"primaryKey;size:8"`
	Value        int
}

type OrderAddressInput struct {
	Street  string `json:"street" validate:"max=200"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
	ZipCode string `json:"zipCode" validate:"max=20"`
}

type OrderCustomerInput struct {
	Name    string             `json:"name" validate:"required,max=100"`
	Phone   string             `json:"phone" validate:"required,min=6,max=20"`
	Email   string             `json:"email" validate:"omitempty,email"`
	Address *OrderAddressInput `json:"address"`
}

type PlaceOrderItemInput struct {
	ID                  uint                `json:"id"`
	MenuItemID          uint                `json:"menuItemId"`
	Name                string              `json:"name"`
	Price               float64             `json:"price" validate:"gte=0"`
	Quantity            int                 `json:"quantity" validate:"required,min=1,max=100"`
	Modifiers           []OrderItemModifier `json:"modifiers"`
	SpecialInstructions string              `json:"specialInstructions" validate:"max=500"`
}

// ItemID accepts either "id" or "menuItemId" from the storefront.
func (i PlaceOrderItemInput) ItemID() uint {
	if i.MenuItemID != 0 {
		return i.MenuItemID
	}
	return i.ID
}

type PlaceOrderInput struct {
	RestaurantID   uint                  `json:"restaurantId" validate:"required"`
	Customer       OrderCustomerInput    `json:"customer"`
	Items          []PlaceOrderItemInput `json:"items" validate:"required,min=1,dive"`
	OrderType      string                `json:"orderType" validate:"omitempty,oneof=delivery takeaway dine-in"`
	PaymentMethod  string                `json:"paymentMethod" validate:"omitempty,oneof=cash-on-delivery card online wallet"`
	TableNumber    string                `json:"tableNumber" validate:"max=20"`
	Notes          string                `json:"notes" validate:"max=1000"`
	IdempotencyKey string                `json:"idempotencyKey" validate:"max=100"`
}

type PlaceOrderResult struct {
	OrderID       uint      `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	Status        string    `json:"status"`
	EstimatedTime time.Time `json:"estimatedTime"`
	TotalAmount   float64   `json:"totalAmount"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	DeliveryFee   float64   `json:"deliveryFee"`
	Discount      float64   `json:"discount"`
	Repriced      bool      `json:"repriced"`
	Duplicate     bool      `json:"duplicate"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready out-for-delivery delivered completed cancelled"`
	Notes  string `json:"notes" validate:"max=500"`
}

type UpdateOrderChargesInput struct {
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0"`
	DeliveryFee *float64 `json:"deliveryFee" validate:"omitempty,gte=0"`
}

type OrderFilter struct {
	Status string `query:"status"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}
