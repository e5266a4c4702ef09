package validate

import (
	"errors"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cuisine", func(fl validator.FieldLevel) bool {
		return utils.IsValidValueOfConstant(strings.ToLower(fl.Field().String()), model.CuisineTypes)
	})
	_ = v.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		return utils.IsValidValueOfConstant(fl.Field().String(), model.NotificationTypes)
	})
	return v
}

// Struct runs the shared validator, custom tags included.
func Struct(input any) error {
	return validate.Struct(input)
}

// body parses the JSON body into T, validates it and stores it in Locals under key.
func body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.ERROR_VALIDATION, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}

// optionalBody is body for endpoints whose payload may be empty.
func optionalBody[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
			}
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.ERROR_VALIDATION, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}

// query is body for query strings.
func query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.ERROR_VALIDATION, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}

// GetById checks a numeric route param and stores it in Locals("inputId").
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := utils.ParamID(c, key)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", id)
		return c.Next()
	}
}
