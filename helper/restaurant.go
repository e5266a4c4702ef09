package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_manager/model"

	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CurrentRestaurant resolves the tenant of an authenticated owner.
func CurrentRestaurant(db *gorm.DB, userID uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := db.Where("owner_id = ?", userID).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func CreateRestaurant(db *gorm.DB, ownerID uint, input model.CreateRestaurantInput) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Restaurant{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRestaurantExists
		}

		slug, err := GenerateUniqueRestaurantSlug(tx, input.Name, 0)
		if err != nil {
			return err
		}

		restaurant = model.Restaurant{
			OwnerID:         ownerID,
			Name:            strings.TrimSpace(input.Name),
			Slug:            slug,
			Description:     input.Description,
			CuisineType:     input.CuisineType,
			Branding:        model.DefaultBranding(),
			IsActive:        true,
			OrderingEnabled: true,
			PaymentSettings: model.PaymentSettings{
				TaxRate:         Defaults.TaxRate,
				DeliveryFee:     Defaults.DeliveryFee,
				Currency:        "USD",
				AcceptedMethods: datatypes.JSONSlice[string]{"cash-on-delivery", "card"},
			},
			OpeningHours: datatypes.NewJSONType(input.OpeningHours),
		}
		if err := copier.Copy(&restaurant.Contact, &input.Contact); err != nil {
			return err
		}
		applyBranding(&restaurant.Branding, input.Branding)

		if err := tx.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
		// every restaurant starts with the default loyalty ladder
		return tx.Create(&model.LoyaltyProgram{RestaurantID: restaurant.ID, IsActive: true}).Error
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func UpdateRestaurant(db *gorm.DB, restaurant *model.Restaurant, input model.UpdateRestaurantInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if input.Name != nil && strings.TrimSpace(*input.Name) != restaurant.Name {
			restaurant.Name = strings.TrimSpace(*input.Name)
			slug, err := GenerateUniqueRestaurantSlug(tx, restaurant.Name, restaurant.ID)
			if err != nil {
				return err
			}
			restaurant.Slug = slug
		}
		if input.Description != nil {
			restaurant.Description = *input.Description
		}
		if input.CuisineType != nil {
			restaurant.CuisineType = *input.CuisineType
		}
		if input.Contact != nil {
			if err := copier.Copy(&restaurant.Contact, input.Contact); err != nil {
				return err
			}
		}
		if input.OpeningHours != nil {
			restaurant.OpeningHours = datatypes.NewJSONType(input.OpeningHours)
		}
		if input.Branding != nil {
			applyBranding(&restaurant.Branding, *input.Branding)
		}
		if input.IsActive != nil {
			restaurant.IsActive = *input.IsActive
		}
		if input.OrderingEnabled != nil {
			restaurant.OrderingEnabled = *input.OrderingEnabled
		}
		return tx.Save(restaurant).Error
	})
}

func applyBranding(dst *model.Branding, in model.BrandingInput) {
	if in.PrimaryColor != "" {
		dst.PrimaryColor = in.PrimaryColor
	}
	if in.SecondaryColor != "" {
		dst.SecondaryColor = in.SecondaryColor
	}
	if in.LogoURL != "" {
		dst.LogoURL = in.LogoURL
	}
	if in.BannerURL != "" {
		dst.BannerURL = in.BannerURL
	}
}

func UpdatePaymentSettings(db *gorm.DB, restaurant *model.Restaurant, input model.PaymentSettingsInput) error {
	ps := &restaurant.PaymentSettings
	if input.TaxRate != nil {
		ps.TaxRate = *input.TaxRate
	}
	if input.DeliveryFee != nil {
		ps.DeliveryFee = *input.DeliveryFee
	}
	if input.Currency != nil {
		ps.Currency = strings.ToUpper(*input.Currency)
	}
	if input.MinimumOrder != nil {
		ps.MinimumOrder = *input.MinimumOrder
	}
	if input.AcceptedMethods != nil {
		ps.AcceptedMethods = input.AcceptedMethods
	}
	return db.Save(restaurant).Error
}

// FindPublicRestaurant looks a storefront up by slug, or by numeric id when key is a number.
func FindPublicRestaurant(db *gorm.DB, key string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	q := db.Where("slug = ?", key)
	if id, ok := parseID(key); ok {
		q = db.Where("id = ?", id)
	}
	if err := q.First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func MarkPublished(db *gorm.DB, restaurant *model.Restaurant, url string, at time.Time) error {
	restaurant.Website = model.Website{IsPublished: true, PublishedAt: &at, URL: url}
	return db.Model(restaurant).Updates(map[string]any{
		"website_is_published": true,
		"website_published_at": at,
		"website_url":          url,
	}).Error
}
