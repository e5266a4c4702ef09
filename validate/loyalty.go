package validate

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

var errDuplicateTier = errors.New("tier names must be unique")

func UpdateLoyaltyProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateLoyaltyProgramInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.ERROR_VALIDATION, err)
		}

		seen := map[string]bool{}
		for _, t := range input.Tiers {
			if seen[t.Name] {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_VALIDATION, errDuplicateTier)
			}
			seen[t.Name] = true
		}

		c.Locals("inputLoyaltyProgram", input)
		return c.Next()
	}
}

func CreateReward() fiber.Handler {
	return body[model.CreateRewardInput]("inputReward")
}

func RedeemReward() fiber.Handler {
	return body[model.RedeemRewardInput]("inputRedeemReward")
}
