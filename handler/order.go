package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// PlaceOrder is the public checkout. A replayed idempotency key answers 200 with the
// original order instead of 201.
func PlaceOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("inputPlaceOrder").(model.PlaceOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	result, err := helper.PlaceOrder(database.DB, input, now())
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusCreated
	if result.Duplicate {
		status = fiber.StatusOK
	}
	return utils.SuccessResponse(c, status, result)
}

// TrackOrder exposes only what a customer needs to follow an order.
func TrackOrder(c *fiber.Ctx) error {
	order, err := helper.GetOrderByNumber(database.DB, c.Params("orderNumber"))
	if err != nil {
		return respondError(c, err)
	}

	history := make([]fiber.Map, 0, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		history = append(history, fiber.Map{"status": h.Status, "timestamp": h.Timestamp})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderNumber":        order.OrderNumber,
		"status":             order.Status,
		"orderType":          order.OrderType,
		"items":              order.Items,
		"subtotal":           order.Subtotal,
		"tax":                order.Tax,
		"deliveryFee":        order.DeliveryFee,
		"discount":           order.Discount,
		"totalAmount":        order.FinalAmount,
		"paymentStatus":      order.PaymentStatus,
		"estimatedReadyTime": order.EstimatedReadyTime,
		"statusHistory":      history,
		"createdAt":          order.CreatedAt,
	})
}

func GetOrders(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputOrderFilter").(model.OrderFilter)

	orders, total, err := helper.ListOrders(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, paged(orders, total, filter.Limit, filter.Page))
}

func GetKitchenOrders(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	orders, err := helper.ListKitchenOrders(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	order, err := helper.GetOrder(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "orderId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	order, err := helper.UpdateOrderStatus(database.DB, restaurant.ID, id, input, actor(c), now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func UpdateOrderCharges(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputOrderCharges").(model.UpdateOrderChargesInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "orderId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	order, err := helper.UpdateOrderCharges(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func CancelOrder(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	order, err := helper.CancelOrder(database.DB, restaurant.ID, inputID(c), actor(c), c.Query("reason"), now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
