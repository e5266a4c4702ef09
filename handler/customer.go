package handler

import (
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetCustomers(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputCustomerFilter").(model.CustomerFilter)

	customers, total, err := helper.ListCustomers(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, paged(customers, total, filter.Limit, filter.Page))
}

func GetCustomerById(c *fiber.Ctx) error {
	db := database.DB
	restaurant := currentRestaurant(c)

	customer, err := helper.GetCustomer(db, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	tier, err := helper.GetCustomerTier(db, restaurant.ID, customer.ID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer": customer,
		"loyalty":  tier,
	})
}

func GetCustomerAnalytics(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	analytics, err := helper.GetCustomerAnalytics(database.DB, restaurant.ID, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, analytics)
}
