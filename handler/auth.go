package handler

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func setAccessCookie(c *fiber.Ctx, token model.TokenData) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token.AccessToken,
		Expires:  time.Unix(token.ExpiresAt, 0),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func Register(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputRegister").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	existing, err := helper.GetUserByEmail(db, input.Email)
	if err != nil {
		return respondError(c, err)
	}
	if existing != nil {
		return respondError(c, helper.ErrEmailTaken)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return respondError(c, err)
	}
	user := model.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hash,
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return respondError(c, err)
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
	if err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, token)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"user":  user,
		"token": token,
	})
}

func Login(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("inputLogin").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, nil)
	}

	user, err := helper.GetUserByEmail(db, input.Email)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.Password) {
		return respondError(c, helper.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is not active", errors.New("inactive"))
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
	if err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, token)

	restaurant, err := helper.CurrentRestaurant(db, user.ID)
	if err != nil && !errors.Is(err, helper.ErrRestaurantNotFound) {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user":       user,
		"token":      token,
		"restaurant": restaurant,
	})
}

func Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func Me(c *fiber.Ctx) error {
	db := database.DB
	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, nil)
	}

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return respondError(c, helper.ErrUserNotFound)
	}
	restaurant, err := helper.CurrentRestaurant(db, user.ID)
	if err != nil && !errors.Is(err, helper.ErrRestaurantNotFound) {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user":       user,
		"restaurant": restaurant,
	})
}
