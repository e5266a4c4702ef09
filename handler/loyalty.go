package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetLoyaltyProgram(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	program, err := helper.GetLoyaltyProgram(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, program)
}

func UpdateLoyaltyProgram(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputLoyaltyProgram").(model.UpdateLoyaltyProgramInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	program, err := helper.UpdateLoyaltyProgram(database.DB, restaurant.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, program)
}

func GetCustomerTier(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	tier, err := helper.GetCustomerTier(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tier)
}

func GetRewards(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	rewards, err := helper.ListRewards(database.DB, restaurant.ID, c.QueryBool("active"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rewards)
}

func CreateReward(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputReward").(model.CreateRewardInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	reward, err := helper.CreateReward(database.DB, restaurant.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, reward)
}

func UpdateReward(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputReward").(model.CreateRewardInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "rewardId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	reward, err := helper.UpdateReward(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, reward)
}

func DeleteReward(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.DeleteReward(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c)})
}

func RedeemReward(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputRedeemReward").(model.RedeemRewardInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "rewardId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	redemption, err := helper.RedeemReward(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, redemption)
}
