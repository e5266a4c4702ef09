package model

import (
	"time"

	"gorm.io/datatypes"
)

var NotificationTypes = []string{
	"order_new", "order_update", "order_ready", "order_cancelled", "inventory_low",
	"staff_clockin", "staff_clockout", "payment_received", "payment_failed",
	"customer_birthday", "review_new", "system_alert", "marketing", "custom",
}

type NotificationChannels struct {
	Push  bool `json:"push"`
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	InApp bool `json:"inApp"`
}

type Notification struct {
	DTO
	RestaurantID   uint                 `gorm:"index" json:"restaurantId"`
	RecipientID    uint                 `gorm:"index" json:"recipientId"`
	RecipientModel string               `json:"recipientModel"`
	RecipientEmail string               `json:"recipientEmail,omitempty"`
	Type           string               `json:"type"`
	Priority       string               `json:"priority"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Data           datatypes.JSONMap    `json:"data"`
	Channels       NotificationChannels `gorm:"embedded;embeddedPrefix:channel_" json:"channels"`
	Status         string               `gorm:"index" json:"status"`
	SentAt         *time.Time           `json:"sentAt"`
	DeliveredAt    *time.Time           `json:"deliveredAt"`
	ReadAt         *time.Time           `json:"readAt"`
	ExpiresAt      time.Time            `gorm:"index" json:"expiresAt"`
	RetryCount     int                  `json:"retryCount"`
	ErrorMessage   string               `json:"errorMessage,omitempty"`
}

type CreateNotificationInput struct {
	RecipientID    uint                  `json:"recipientId"`
	RecipientModel string                `json:"recipientModel" validate:"omitempty,oneof=User Staff Customer"`
	RecipientEmail string                `json:"recipientEmail" validate:"omitempty,email"`
	Type           string                `json:"type" validate:"omitempty,notification_type"`
	Priority       string                `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Title          string                `json:"title" validate:"required,max=200"`
	Message        string                `json:"message" validate:"required,max=2000"`
	Data           map[string]any        `json:"data"`
	Channels       *NotificationChannels `json:"channels"`
	ExpiresAt      *time.Time            `json:"expiresAt"`
}

type NotificationFilter struct {
	Unread string `query:"unread"`
	Type   string `query:"type"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}
