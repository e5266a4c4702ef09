package helper

import "errors"

// Not found. Resources owned by another restaurant are reported as not found too.
var (
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrStaffNotFound        = errors.New("staff not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInventoryNotFound    = errors.New("inventory item not found")
	ErrQRCodeNotFound       = errors.New("qr code not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrDeploymentNotFound   = errors.New("deployment not found")
)

// Domain rule violations (400).
var (
	ErrOrderingDisabled              = errors.New("restaurant is not accepting orders")
	ErrMenuItemUnavailable           = errors.New("menu item is unavailable")
	ErrMenuItemRequired              = errors.New("order items must reference a menu item")
	ErrUnknownModifier               = errors.New("modifier is not offered for this item")
	ErrBelowMinimumOrder             = errors.New("order is below the restaurant minimum")
	ErrOrderNotCancellable           = errors.New("order can only be cancelled while pending or confirmed")
	ErrInvalidOrderStatus            = errors.New("invalid order status")
	ErrRefundNotAllowed              = errors.New("refund exceeds the refundable amount or payment has not succeeded")
	ErrPaymentNotPending             = errors.New("payment is not pending")
	ErrOrderAlreadyPaid              = errors.New("order is already paid")
	ErrRewardUnavailable             = errors.New("reward is not available")
	ErrRewardLimitReached            = errors.New("reward usage limit reached for this customer")
	ErrRewardMinimumOrder            = errors.New("order total is below the reward minimum")
	ErrInsufficientPoints            = errors.New("insufficient loyalty points")
	ErrInvalidNotificationTransition = errors.New("invalid notification status transition")
	ErrNoActiveBreak                 = errors.New("no active break")
	ErrBreakAlreadyStarted           = errors.New("break already in progress")
	ErrStaffInactive                 = errors.New("staff member is not active")
	ErrInvalidCredentials            = errors.New("invalid email or password")
	ErrInvalidDateRange              = errors.New("invalid date range")
	ErrUploadNotConfigured           = errors.New("image uploads are not configured")
)

// Conflicts (409).
var (
	ErrRestaurantExists     = errors.New("user already owns a restaurant")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrEmployeeIDTaken      = errors.New("employee id already exists")
	ErrTableExists          = errors.New("table already has a qr code")
	ErrAlreadyClockedIn     = errors.New("staff member is already clocked in")
	ErrNoActiveClockIn      = errors.New("staff member is not clocked in")
	ErrDeploymentInProgress = errors.New("a deployment is already running for this restaurant")
)

var ErrReceiptNumberExhausted = errors.New("could not allocate a free receipt number")
