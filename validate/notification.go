package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateNotification() fiber.Handler {
	return body[model.CreateNotificationInput]("inputCreateNotification")
}

func NotificationFilter() fiber.Handler {
	return query[model.NotificationFilter]("inputNotificationFilter")
}
