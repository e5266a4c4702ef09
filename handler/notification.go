package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetNotifications(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputNotificationFilter").(model.NotificationFilter)

	rows, total, unread, err := helper.ListNotifications(database.DB, restaurant.ID, filter, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"rows":        rows,
		"limit":       filter.Limit,
		"page":        filter.Page,
		"totalCount":  total,
		"unreadCount": unread,
	})
}

func CreateNotification(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputCreateNotification").(model.CreateNotificationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	if input.RecipientID == 0 {
		input.RecipientID = restaurant.OwnerID
	}

	n, err := helper.CreateNotification(database.DB, restaurant.ID, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, n)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	n, err := helper.MarkNotificationRead(database.DB, restaurant.ID, inputID(c), now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, n)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	updated, err := helper.MarkAllNotificationsRead(database.DB, restaurant.ID, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"updated": updated})
}

func DeleteNotification(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.DeleteNotification(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c)})
}
