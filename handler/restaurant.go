package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateRestaurant(c *fiber.Ctx) error {
	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, nil)
	}
	input, ok := c.Locals("inputCreateRestaurant").(model.CreateRestaurantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	restaurant, err := helper.CreateRestaurant(database.DB, claim.UserId, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, restaurant)
}

func GetMyRestaurant(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, currentRestaurant(c))
}

func UpdateRestaurant(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputUpdateRestaurant").(model.UpdateRestaurantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	if err := helper.UpdateRestaurant(database.DB, restaurant, input); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, restaurant)
}

func GetPaymentSettings(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	return utils.SuccessResponse(c, fiber.StatusOK, model.PaymentSettingsView{
		PaymentSettings: restaurant.PaymentSettings,
		RestaurantID:    restaurant.ID,
	})
}

func UpdatePaymentSettings(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputPaymentSettings").(model.PaymentSettingsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	if err := helper.UpdatePaymentSettings(database.DB, restaurant, input); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.PaymentSettingsView{
		PaymentSettings: restaurant.PaymentSettings,
		RestaurantID:    restaurant.ID,
	})
}

// GetPublicRestaurant serves storefront info by slug or id.
func GetPublicRestaurant(c *fiber.Ctx) error {
	restaurant, err := helper.FindPublicRestaurant(database.DB, c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	if !restaurant.IsActive {
		return respondError(c, helper.ErrRestaurantNotFound)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":              restaurant.ID,
		"name":            restaurant.Name,
		"slug":            restaurant.Slug,
		"description":     restaurant.Description,
		"cuisineType":     restaurant.CuisineType,
		"contact":         restaurant.Contact,
		"openingHours":    restaurant.OpeningHours,
		"branding":        restaurant.Branding,
		"orderingEnabled": restaurant.OrderingEnabled,
		"isOpen":          restaurant.IsOpenAt(now()),
		"paymentSettings": fiber.Map{
			"currency":        restaurant.PaymentSettings.Currency,
			"minimumOrder":    restaurant.PaymentSettings.MinimumOrder,
			"acceptedMethods": restaurant.PaymentSettings.AcceptedMethods,
		},
	})
}
