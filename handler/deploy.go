package handler

import (
	"errors"

	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Deployer is set at startup.
var Deployer *helper.Deployer

func DeployWebsite(c *fiber.Ctx) error {
	if Deployer == nil {
		return respondError(c, errors.New("deployer is not configured"))
	}
	restaurant := currentRestaurant(c)

	dep, err := Deployer.Deploy(c.UserContext(), restaurant, now)
	if err != nil {
		return respondError(c, err)
	}

	if dep.FailureReason != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Deployment failed",
			"error":   dep.FailureReason,
			"data":    dep,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, dep)
}

func GetDeployments(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	deps, err := helper.ListDeployments(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"website":     restaurant.Website,
		"deployments": deps,
	})
}

func GetDeploymentById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	dep, err := helper.GetDeployment(database.DB, restaurant.ID, c.Params("deploymentId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, dep)
}
