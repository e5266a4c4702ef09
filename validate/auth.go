package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return body[model.RegisterInput]("inputRegister")
}

func Login() fiber.Handler {
	return body[model.LoginInput]("inputLogin")
}
