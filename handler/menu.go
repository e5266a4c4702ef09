package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMenuItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputCreateMenuItem").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	item, err := helper.CreateMenuItem(database.DB, restaurant.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func GetMenuItems(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputMenuFilter").(model.MenuFilter)

	items, err := helper.ListMenuItems(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func GetMenuItemById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	item, err := helper.GetMenuItem(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func UpdateMenuItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputUpdateMenuItem").(model.UpdateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "itemId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	item, err := helper.UpdateMenuItem(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteMenuItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.DeleteMenuItem(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c)})
}

// GetPublicMenu lists the storefront menu. Only available items are shown unless ?available is given.
func GetPublicMenu(c *fiber.Ctx) error {
	restaurant, err := helper.FindPublicRestaurant(database.DB, c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	filter, _ := c.Locals("inputMenuFilter").(model.MenuFilter)
	if filter.Available == "" {
		filter.Available = "true"
	}

	items, err := helper.ListMenuItems(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func GetPublicCategories(c *fiber.Ctx) error {
	restaurant, err := helper.FindPublicRestaurant(database.DB, c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}

	categories, err := helper.MenuCategories(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}
