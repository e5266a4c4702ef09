package constants

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_INVALID_INPUT      = "Invalid input"
	ERROR_UNAUTHORIZED       = "Unauthorized"
	ERROR_FORBIDDEN          = "Forbidden"
	ERROR_NOT_FOUND          = "Resource not found"
	DATA_INPUT_IS_NOT_NUMBER = "Param must be a number"
	ERROR_VALIDATION         = "Validation failed"
)

// Order statuses.
const (
	ORDER_PENDING          = "pending"
	ORDER_CONFIRMED        = "confirmed"
	ORDER_PREPARING        = "preparing"
	ORDER_READY            = "ready"
	ORDER_OUT_FOR_DELIVERY = "out-for-delivery"
	ORDER_DELIVERED        = "delivered"
	ORDER_COMPLETED        = "completed"
	ORDER_CANCELLED        = "cancelled"
)

const (
	ORDER_TYPE_DELIVERY = "delivery"
	ORDER_TYPE_TAKEAWAY = "takeaway"
	ORDER_TYPE_DINE_IN  = "dine-in"
)

const (
	ORDER_PAYMENT_PENDING  = "pending"
	ORDER_PAYMENT_PAID     = "paid"
	ORDER_PAYMENT_FAILED   = "failed"
	ORDER_PAYMENT_REFUNDED = "refunded"
)

const (
	PAYMENT_PENDING            = "pending"
	PAYMENT_PROCESSING         = "processing"
	PAYMENT_SUCCEEDED          = "succeeded"
	PAYMENT_FAILED             = "failed"
	PAYMENT_CANCELLED          = "cancelled"
	PAYMENT_REFUNDED           = "refunded"
	PAYMENT_PARTIALLY_REFUNDED = "partially_refunded"
)

const (
	REFUND_PENDING   = "pending"
	REFUND_SUCCEEDED = "succeeded"
	REFUND_FAILED    = "failed"
)

const (
	NOTIFICATION_PENDING   = "pending"
	NOTIFICATION_SENT      = "sent"
	NOTIFICATION_DELIVERED = "delivered"
	NOTIFICATION_READ      = "read"
	NOTIFICATION_FAILED    = "failed"
)

const (
	NOTIFICATION_MAX_RETRIES = 3
	NOTIFICATION_TTL_DAYS    = 30
)

const (
	TIMESHEET_DRAFT     = "draft"
	TIMESHEET_SUBMITTED = "submitted"
	TIMESHEET_APPROVED  = "approved"
	TIMESHEET_REJECTED  = "rejected"
)

const (
	STAFF_ACTIVE     = "active"
	STAFF_INACTIVE   = "inactive"
	STAFF_ON_LEAVE   = "on_leave"
	STAFF_TERMINATED = "terminated"
)

const (
	DEPLOYMENT_PENDING  = "pending"
	DEPLOYMENT_BUILDING = "building"
	DEPLOYMENT_DEPLOYED = "deployed"
	DEPLOYMENT_FAILED   = "failed"
)

// Realtime event names pushed to dashboard clients.
const (
	EVENT_ORDER_NEW           = "order:new"
	EVENT_ORDER_UPDATE        = "order:update"
	EVENT_ORDER_CANCELLED     = "order:cancelled"
	EVENT_KITCHEN_ORDER_READY = "kitchen:order_ready"
	EVENT_INVENTORY_LOW       = "inventory:low"
	EVENT_STAFF_CLOCK_IN      = "staff:clock_in"
	EVENT_STAFF_CLOCK_OUT     = "staff:clock_out"
	EVENT_NOTIFICATION_NEW    = "notification:new"
)

const (
	REGULAR_HOURS_PER_DAY       = 8.0
	ESTIMATED_READY_MINUTES     = 30
	DEFAULT_PREPARATION_MINUTES = 15
)
