package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func ProcessPayment(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputProcessPayment").(model.ProcessPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	payment, err := helper.ProcessPayment(database.DB, restaurant, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, payment)
}

func GetPayments(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputPaymentFilter").(model.PaymentFilter)

	payments, total, err := helper.ListPayments(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, paged(payments, total, filter.Limit, filter.Page))
}

func GetPaymentById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	payment, err := helper.GetPayment(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"payment":          payment,
		"refundable":       payment.Refundable(),
		"refundableAmount": payment.RefundableAmount(),
	})
}

func ConfirmPayment(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputConfirmPayment").(model.ConfirmPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "paymentId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	payment, err := helper.ConfirmPayment(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func FailPayment(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputFailPayment").(model.FailPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "paymentId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	payment, err := helper.FailPayment(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func RefundPayment(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputRefund").(model.RefundInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "paymentId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	payment, err := helper.RefundPayment(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}
