package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetStaffs(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	filter, _ := c.Locals("inputStaffFilter").(model.StaffFilter)

	staff, err := helper.ListStaff(database.DB, restaurant.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, staff)
}

func GetStaffById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	staff, err := helper.GetStaff(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, staff)
}

func CreateStaff(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputCreateStaff").(model.StaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	staff, err := helper.CreateStaff(database.DB, restaurant.ID, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, staff)
}

func UpdateStaff(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputUpdateStaff").(model.UpdateStaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "staffId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	staff, err := helper.UpdateStaff(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, staff)
}

// DeleteStaff terminates the staff member; timesheets stay for payroll history.
func DeleteStaff(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.TerminateStaff(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c), "status": constants.STAFF_TERMINATED})
}

func ClockIn(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, _ := c.Locals("inputClock").(model.ClockInput)
	id, ok := utils.ParamID(c, "staffId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	sheet, err := helper.ClockIn(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, sheet)
}

func ClockOut(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, _ := c.Locals("inputClock").(model.ClockInput)
	id, ok := utils.ParamID(c, "staffId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	sheet, err := helper.ClockOut(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sheet)
}

func StartBreak(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, _ := c.Locals("inputBreak").(model.BreakInput)
	id, ok := utils.ParamID(c, "staffId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	sheet, err := helper.StartBreak(database.DB, restaurant.ID, id, input, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sheet)
}

func EndBreak(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	sheet, err := helper.EndBreak(database.DB, restaurant.ID, inputID(c), now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sheet)
}

// GetTimesheets lists timesheets in [from, to], optionally for one staff member (?staffId=).
func GetTimesheets(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	dates, _ := c.Locals("inputDateRange").(model.DateRange)

	from, to, err := utils.ParseDateRange(dates.From, dates.To, now(), 7)
	if err != nil {
		return respondError(c, err)
	}
	staffID := uint(max(c.QueryInt("staffId"), 0))

	sheets, err := helper.ListTimesheets(database.DB, restaurant.ID, staffID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sheets)
}
