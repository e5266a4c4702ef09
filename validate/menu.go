package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMenuItem() fiber.Handler {
	return body[model.CreateMenuItemInput]("inputCreateMenuItem")
}

func UpdateMenuItem() fiber.Handler {
	return body[model.UpdateMenuItemInput]("inputUpdateMenuItem")
}

func MenuFilter() fiber.Handler {
	return query[model.MenuFilter]("inputMenuFilter")
}
