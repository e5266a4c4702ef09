package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateQRCode() fiber.Handler {
	return body[model.QRCodeInput]("inputCreateQRCode")
}

func UpdateQRCode() fiber.Handler {
	return body[model.UpdateQRCodeInput]("inputUpdateQRCode")
}
