package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateInventoryItem() fiber.Handler {
	return body[model.InventoryInput]("inputCreateInventory")
}

func UpdateInventoryItem() fiber.Handler {
	return body[model.UpdateInventoryInput]("inputUpdateInventory")
}

func Restock() fiber.Handler {
	return body[model.RestockInput]("inputRestock")
}
