package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CustomerFilter() fiber.Handler {
	return query[model.CustomerFilter]("inputCustomerFilter")
}
