package validate

import (
	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
)

func SalesReport() fiber.Handler {
	return query[model.SalesReportInput]("inputSalesReport")
}

func DateRange() fiber.Handler {
	return query[model.DateRange]("inputDateRange")
}
