package handler

import (
	"errors"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	// ExposeErrors includes the error text in 500 responses. Development only.
	ExposeErrors = false

	now = time.Now
)

type errorStatus struct {
	err     error
	status  int
	message string
}

var errorStatuses = []errorStatus{
	{helper.ErrRestaurantNotFound, fiber.StatusNotFound, "Restaurant not found"},
	{helper.ErrOrderNotFound, fiber.StatusNotFound, "Order not found"},
	{helper.ErrMenuItemNotFound, fiber.StatusNotFound, "Menu item not found"},
	{helper.ErrCustomerNotFound, fiber.StatusNotFound, "Customer not found"},
	{helper.ErrRewardNotFound, fiber.StatusNotFound, "Reward not found"},
	{helper.ErrPaymentNotFound, fiber.StatusNotFound, "Payment not found"},
	{helper.ErrStaffNotFound, fiber.StatusNotFound, "Staff member not found"},
	{helper.ErrNotificationNotFound, fiber.StatusNotFound, "Notification not found"},
	{helper.ErrInventoryNotFound, fiber.StatusNotFound, "Inventory item not found"},
	{helper.ErrQRCodeNotFound, fiber.StatusNotFound, "QR code not found"},
	{helper.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{helper.ErrDeploymentNotFound, fiber.StatusNotFound, "Deployment not found"},

	{helper.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},

	{helper.ErrRestaurantExists, fiber.StatusConflict, "Restaurant already exists"},
	{helper.ErrEmailTaken, fiber.StatusConflict, "Email already registered"},
	{helper.ErrEmployeeIDTaken, fiber.StatusConflict, "Employee ID already exists"},
	{helper.ErrTableExists, fiber.StatusConflict, "Table already exists"},
	{helper.ErrAlreadyClockedIn, fiber.StatusConflict, "Already clocked in"},
	{helper.ErrNoActiveClockIn, fiber.StatusConflict, "Not clocked in"},
	{helper.ErrDeploymentInProgress, fiber.StatusConflict, "Deployment in progress"},

	{helper.ErrUploadNotConfigured, fiber.StatusServiceUnavailable, "Uploads are not configured"},
}

// respondError maps helper errors to HTTP statuses. Unknown errors become 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return utils.ErrorResponse(c, e.status, e.message, err)
		}
	}
	if isRuleViolation(err) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	logger.WithComponent("http").Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	if ExposeErrors {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
}

var ruleViolations = []error{
	helper.ErrOrderingDisabled,
	helper.ErrMenuItemUnavailable,
	helper.ErrMenuItemRequired,
	helper.ErrUnknownModifier,
	helper.ErrBelowMinimumOrder,
	helper.ErrOrderNotCancellable,
	helper.ErrInvalidOrderStatus,
	helper.ErrRefundNotAllowed,
	helper.ErrPaymentNotPending,
	helper.ErrOrderAlreadyPaid,
	helper.ErrRewardUnavailable,
	helper.ErrRewardLimitReached,
	helper.ErrRewardMinimumOrder,
	helper.ErrInsufficientPoints,
	helper.ErrInvalidNotificationTransition,
	helper.ErrNoActiveBreak,
	helper.ErrBreakAlreadyStarted,
	helper.ErrStaffInactive,
	helper.ErrInvalidDateRange,
	utils.ErrInvalidDate,
}

func isRuleViolation(err error) bool {
	for _, v := range ruleViolations {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// currentRestaurant returns what middleware.RequireRestaurant stored.
func currentRestaurant(c *fiber.Ctx) *model.Restaurant {
	r, _ := c.Locals("restaurant").(*model.Restaurant)
	return r
}

// actor names the caller in status history.
func actor(c *fiber.Ctx) string {
	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok || claim.Email == "" {
		return "owner"
	}
	return claim.Email
}

func inputID(c *fiber.Ctx) uint {
	id, _ := c.Locals("inputId").(uint)
	return id
}

func paged(rows any, total int64, limit, page *int) model.ResponseCustom {
	return model.ResponseCustom{Rows: rows, Limit: limit, Page: page, TotalCount: total}
}
