package validate

import (
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// PlaceOrder also accepts the idempotency key from the Idempotency-Key header.
// The header wins over the body field.
func PlaceOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PlaceOrderInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}
		if key := strings.TrimSpace(c.Get("Idempotency-Key")); key != "" {
			input.IdempotencyKey = key
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.ERROR_VALIDATION, err)
		}

		c.Locals("inputPlaceOrder", input)
		return c.Next()
	}
}

func UpdateOrderStatus() fiber.Handler {
	return body[model.UpdateOrderStatusInput]("inputOrderStatus")
}

func UpdateOrderCharges() fiber.Handler {
	return body[model.UpdateOrderChargesInput]("inputOrderCharges")
}

func OrderFilter() fiber.Handler {
	return query[model.OrderFilter]("inputOrderFilter")
}
