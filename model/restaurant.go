package model

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

var CuisineTypes = []string{
	"pizza", "burger", "mexican", "italian", "chinese", "indian", "thai",
	"american", "cafe", "bakery", "bbq", "seafood", "vegetarian", "other",
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OpeningHours is keyed by lowercase weekday name ("monday" ... "sunday").
type OpeningHours map[string]DayHours

type Branding struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
	BannerURL      string `json:"bannerUrl"`
}

type PaymentSettings struct {
	TaxRate         float64                     `json:"taxRate"`
	DeliveryFee     float64                     `json:"deliveryFee"`
	Currency        string                      `json:"currency"`
	MinimumOrder    float64                     `json:"minimumOrder"`
	AcceptedMethods datatypes.JSONSlice[string] `json:"acceptedMethods"`
}

type Website struct {
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	URL         string     `json:"url"`
}

type Restaurant struct {
	DTO
	OwnerID         uint                             `gorm:"index" json:"ownerId"`
	Name            string                           `json:"name"`
	Slug            string                           `gorm:"uniqueIndex;size:255" json:"slug"`
	Description     string                           `json:"description"`
	CuisineType     string                           `json:"cuisineType"`
	Contact         Contact                          `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	OpeningHours    datatypes.JSONType[OpeningHours] `json:"openingHours"`
	Branding        Branding                         `gorm:"embedded;embeddedPrefix:branding_" json:"branding"`
	IsActive        bool                             `json:"isActive"`
	OrderingEnabled bool                             `json:"orderingEnabled"`
	PaymentSettings PaymentSettings                  `gorm:"embedded;embeddedPrefix:payment_" json:"paymentSettings"`
	Website         Website                          `gorm:"embedded;embeddedPrefix:website_" json:"website"`
}

func DefaultBranding() Branding {
	return Branding{PrimaryColor: "#EA580C", SecondaryColor: "#F97316"}
}

// IsOpenAt reports whether t falls inside the opening hours for its weekday.
// A restaurant without configured hours for that day is treated as open.
func (r *Restaurant) IsOpenAt(t time.Time) bool {
	hours := r.OpeningHours.Data()
	day, ok := hours[strings.ToLower(t.Weekday().String())]
	if !ok {
		return true
	}
	if day.Closed {
		return false
	}
	open, okOpen := minutesOfDay(day.Open)
	closing, okClose := minutesOfDay(day.Close)
	if !okOpen || !okClose {
		return true
	}
	now := t.Hour()*60 + t.Minute()
	if closing <= open {
		// past midnight
		return now >= open || now < closing
	}
	return now >= open && now < closing
}

func minutesOfDay(hhmm string) (int, bool) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

type ContactInput struct {
	Phone   string `json:"phone" validate:"omitempty,min=6,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type BrandingInput struct {
	PrimaryColor   string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	LogoURL        string `json:"logoUrl" validate:"omitempty,url"`
	BannerURL      string `json:"bannerUrl" validate:"omitempty,url"`
}

type CreateRestaurantInput struct {
	Name         string        `json:"name" validate:"required,min=2,max=120"`
	Description  string        `json:"description" validate:"max=1000"`
	CuisineType  string        `json:"cuisineType" validate:"required,cuisine"`
	Contact      ContactInput  `json:"contact"`
	OpeningHours OpeningHours  `json:"openingHours"`
	Branding     BrandingInput `json:"branding"`
}

type UpdateRestaurantInput struct {
	Name            *string        `json:"name" validate:"omitempty,min=2,max=120"`
	Description     *string        `json:"description" validate:"omitempty,max=1000"`
	CuisineType     *string        `json:"cuisineType" validate:"omitempty,cuisine"`
	Contact         *ContactInput  `json:"contact"`
	OpeningHours    OpeningHours   `json:"openingHours"`
	Branding        *BrandingInput `json:"branding"`
	IsActive        *bool          `json:"isActive"`
	OrderingEnabled *bool          `json:"orderingEnabled"`
}

type PaymentSettingsInput struct {
	TaxRate         *float64 `json:"taxRate" validate:"omitempty,gte=0,lte=1"`
	DeliveryFee     *float64 `json:"deliveryFee" validate:"omitempty,gte=0"`
	Currency        *string  `json:"currency" validate:"omitempty,len=3"`
	MinimumOrder    *float64 `json:"minimumOrder" validate:"omitempty,gte=0"`
	AcceptedMethods []string `json:"acceptedMethods" validate:"omitempty,dive,oneof=cash-on-delivery card online wallet"`
}
