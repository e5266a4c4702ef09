package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateRestaurant() fiber.Handler {
	return body[model.CreateRestaurantInput]("inputCreateRestaurant")
}

func UpdateRestaurant() fiber.Handler {
	return body[model.UpdateRestaurantInput]("inputUpdateRestaurant")
}

func UpdatePaymentSettings() fiber.Handler {
	return body[model.PaymentSettingsInput]("inputPaymentSettings")
}
