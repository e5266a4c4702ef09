package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

const qrImageSize = 512

func GetQRCodes(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	codes, err := helper.ListQRCodes(database.DB, restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, codes)
}

// GetQRCodeById returns the table with its QR code inlined as a PNG data URL.
func GetQRCodeById(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	qr, err := helper.GetQRCode(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	png, err := helper.QRCodePNG(qr, qrImageSize)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"qrCode": qr,
		"image":  utils.PNGDataURL(png),
	})
}

func GetQRCodeImage(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	qr, err := helper.GetQRCode(database.DB, restaurant.ID, inputID(c))
	if err != nil {
		return respondError(c, err)
	}
	size := c.QueryInt("size", qrImageSize)
	if size < 128 || size > 2048 {
		size = qrImageSize
	}
	png, err := helper.QRCodePNG(qr, size)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="table-`+qr.TableNumber+`.png"`)
	return c.Send(png)
}

func CreateQRCode(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputCreateQRCode").(model.QRCodeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	qr, err := helper.CreateQRCode(database.DB, restaurant, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, qr)
}

func UpdateQRCode(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	input, ok := c.Locals("inputUpdateQRCode").(model.UpdateQRCodeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}
	id, ok := utils.ParamID(c, "qrId")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil)
	}

	qr, err := helper.UpdateQRCode(database.DB, restaurant.ID, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, qr)
}

func DeleteQRCode(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	if err := helper.DeleteQRCode(database.DB, restaurant.ID, inputID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": inputID(c)})
}

// ScanTable is hit by the storefront when a table QR code is opened.
func ScanTable(c *fiber.Ctx) error {
	restaurant, err := helper.FindPublicRestaurant(database.DB, c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}

	qr, err := helper.RecordScan(database.DB, restaurant.ID, c.Params("table"), now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"restaurantId": restaurant.ID,
		"tableNumber":  qr.TableNumber,
		"tableName":    qr.TableName,
		"orderingUrl":  qr.OrderingURL,
	})
}
