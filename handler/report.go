package handler

import (
	"fmt"

	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetSalesReport answers JSON, or CSV with ?format=csv.
func GetSalesReport(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, _ := c.Locals("inputSalesReport").(model.SalesReportInput)

	from, to, err := utils.ParseDateRange(input.From, input.To, now(), 30)
	if err != nil {
		return respondError(c, err)
	}

	report, err := helper.SalesReport(database.DB, restaurant.ID, from, to, input.GroupBy)
	if err != nil {
		return respondError(c, err)
	}

	if c.Query("format") == "csv" {
		data, err := helper.SalesCSV(report)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="sales-%s-%s.csv"`, report.From, report.To))
		return c.Send(data)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, report)
}

func GetCustomerReport(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	report, err := helper.CustomerReportFor(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, report)
}

func GetStaffReport(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	dates, _ := c.Locals("inputDateRange").(model.DateRange)

	from, to, err := utils.ParseDateRange(dates.From, dates.To, now(), 14)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := helper.StaffHoursReport(database.DB, restaurant.ID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

func GetInventoryReport(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	report, err := helper.InventoryReportFor(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, report)
}

func GetDashboard(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	stats, err := helper.Dashboard(database.DB, restaurant.ID, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
