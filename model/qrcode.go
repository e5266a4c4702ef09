package model

import "time"

type TableQRCode struct {
	DTO
	RestaurantID    uint       `gorm:"uniqueIndex:idx_qr_table" json:"restaurantId"`
	TableNumber     string     `gorm:"uniqueIndex:idx_qr_table;size:20" json:"tableNumber"`
	TableName       string     `json:"tableName"`
	OrderingURL     string     `json:"orderingUrl"`
	IsActive        bool       `json:"isActive"`
	SeatingCapacity int        `json:"seatingCapacity"`
	Location        string     `json:"location"`
	Section         string     `json:"section"`
	TotalScans      int        `json:"totalScans"`
	TotalOrders     int        `json:"totalOrders"`
	TotalRevenue    float64    `json:"totalRevenue"`
	LastScanDate    *time.Time `json:"lastScanDate"`
	LastOrderDate   *time.Time `json:"lastOrderDate"`
}

type QRCodeInput struct {
	TableNumber     string `json:"tableNumber" validate:"required,max=20"`
	TableName       string `json:"tableName" validate:"required,max=60"`
	SeatingCapacity int    `json:"seatingCapacity" validate:"omitempty,min=1,max=50"`
	Location        string `json:"location" validate:"omitempty,oneof=indoor outdoor patio bar private"`
	Section         string `json:"section" validate:"max=60"`
}

type UpdateQRCodeInput struct {
	TableName       *string `json:"tableName" validate:"omitempty,max=60"`
	SeatingCapacity *int    `json:"seatingCapacity" validate:"omitempty,min=1,max=50"`
	Location        *string `json:"location" validate:"omitempty,oneof=indoor outdoor patio bar private"`
	Section         *string `json:"section" validate:"omitempty,max=60"`
	IsActive        *bool   `json:"isActive"`
}
