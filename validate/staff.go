package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateStaff() fiber.Handler {
	return body[model.StaffInput]("inputCreateStaff")
}

func UpdateStaff() fiber.Handler {
	return body[model.UpdateStaffInput]("inputUpdateStaff")
}

func Clock() fiber.Handler {
	return optionalBody[model.ClockInput]("inputClock")
}

func StartBreak() fiber.Handler {
	return optionalBody[model.BreakInput]("inputBreak")
}

func StaffFilter() fiber.Handler {
	return query[model.StaffFilter]("inputStaffFilter")
}
