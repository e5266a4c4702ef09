package middleware

import (
	"errors"
	"strconv"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/metrics"
	"restaurant_manager/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func tokenFrom(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

// Protected requires a valid owner token and stores the parsed *jwt.Token in Locals("user").
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}
		if _, ok := helper.ClaimFromToken(jwtToken); !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", errors.New("missing user id"))
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// RequireRestaurant resolves the caller's restaurant and stores it in Locals("restaurant").
// Must run after Protected.
func RequireRestaurant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := helper.GetInfoUserFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, errors.New("no user"))
		}

		restaurant, err := helper.CurrentRestaurant(database.DB, claim.UserId)
		if err != nil {
			if errors.Is(err, helper.ErrRestaurantNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Restaurant not found", err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		c.Locals("restaurant", restaurant)
		return c.Next()
	}
}

// WebsocketAuth lets an upgrade through only for the owner of :restaurantId.
// Browsers cannot set headers on a websocket handshake, so the token comes from ?token=.
func WebsocketAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			token = tokenFrom(c)
		}
		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}
		claim, ok := helper.ClaimFromToken(jwtToken)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", errors.New("missing user id"))
		}

		restaurantID, ok := utils.ParamID(c, "restaurantId")
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		restaurant, err := helper.CurrentRestaurant(database.DB, claim.UserId)
		if err != nil || restaurant.ID != restaurantID {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_FORBIDDEN, errors.New("not your restaurant"))
		}

		c.Locals("restaurantId", restaurantID)
		return c.Next()
	}
}

// Metrics counts requests by method, matched route and status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}
