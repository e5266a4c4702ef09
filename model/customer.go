package model

import "time"

// Customer is the per-restaurant aggregate keyed by phone. Placement only ever adds to it.
type Customer struct {
	DTO
	RestaurantID  uint       `gorm:"uniqueIndex:idx_customer_restaurant_phone" json:"restaurantId"`
	Phone         string     `gorm:"uniqueIndex:idx_customer_restaurant_phone;size:20" json:"phone"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	TotalOrders   int        `json:"totalOrders"`
	TotalSpent    float64    `json:"totalSpent"`
	LoyaltyPoints int        `json:"loyaltyPoints"`
	LastOrderDate *time.Time `json:"lastOrderDate"`
}

type CustomerFilter struct {
	Search string `query:"search"`
	SortBy string `query:"sortBy"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}

type CustomerAnalytics struct {
	TotalCustomers    int64      `json:"totalCustomers"`
	NewThisMonth      int64      `json:"newThisMonth"`
	AverageSpent      float64    `json:"averageSpent"`
	AverageOrderCount float64    `json:"averageOrderCount"`
	TopCustomers      []Customer `json:"topCustomers"`
}
