package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func ProcessPayment() fiber.Handler {
	return body[model.ProcessPaymentInput]("inputProcessPayment")
}

func ConfirmPayment() fiber.Handler {
	return body[model.ConfirmPaymentInput]("inputConfirmPayment")
}

func FailPayment() fiber.Handler {
	return body[model.FailPaymentInput]("inputFailPayment")
}

func RefundPayment() fiber.Handler {
	return body[model.RefundInput]("inputRefund")
}

func PaymentFilter() fiber.Handler {
	return query[model.PaymentFilter]("inputPaymentFilter")
}
