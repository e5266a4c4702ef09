package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetInventory(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	items, err := helper.ListInventory(database.DB, restaurant.ID, c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func GetInventoryAlerts(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	items, err := helper.LowStockItems(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func GetInventoryItemById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	item, err := helper.GetInventoryItem(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func CreateInventoryItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputCreateInventory").(model.InventoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	item, err := helper.CreateInventoryItem(database.DB, restaurant.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func UpdateInventoryItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputUpdateInventory").(model.UpdateInventoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "itemId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	item, err := helper.UpdateInventoryItem(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func RestockInventoryItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputRestock").(model.RestockInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "itemId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	item, err := helper.RestockInventoryItem(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteInventoryItem(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.DeleteInventoryItem(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c)})
}
