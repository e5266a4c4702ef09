package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/metrics"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	public := api.Group("/public")
	public.Get("/restaurants/:key", handler.GetPublicRestaurant)
	public.Get("/restaurants/:key/menu", validate.MenuFilter(), handler.GetPublicMenu)
	public.Get("/restaurants/:key/categories", handler.GetPublicCategories)
	public.Get("/restaurants/:key/tables/:table/scan", handler.ScanTable)
	public.Post("/orders", validate.PlaceOrder(), handler.PlaceOrder)
	public.Get("/orders/:orderNumber", handler.TrackOrder)

	owner := []fiber.Handler{middleware.Protected(), middleware.RequireRestaurant()}

	restaurant := api.Group("/restaurants")
	restaurant.Post("/", middleware.Protected(), validate.CreateRestaurant(), handler.CreateRestaurant)
	me := restaurant.Group("/me", owner...)
	me.Get("/", handler.GetMyRestaurant)
	me.Put("/", validate.UpdateRestaurant(), handler.UpdateRestaurant)
	me.Get("/payment-settings", handler.GetPaymentSettings)
	me.Put("/payment-settings", validate.UpdatePaymentSettings(), handler.UpdatePaymentSettings)
	me.Post("/branding/:kind", handler.UploadBrandingImage)

	menu := api.Group("/menu", owner...)
	menu.Get("/", validate.MenuFilter(), handler.GetMenuItems)
	menu.Get("/:itemId", validate.GetById("itemId"), handler.GetMenuItemById)
	menu.Post("/", validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:itemId", validate.UpdateMenuItem(), handler.UpdateMenuItem)
	menu.Delete("/:itemId", validate.GetById("itemId"), handler.DeleteMenuItem)
	menu.Post("/:itemId/image", validate.GetById("itemId"), handler.UploadMenuItemImage)

	orders := api.Group("/orders")
	orders.Post("/place", validate.PlaceOrder(), handler.PlaceOrder)
	orders.Get("/", append(owner, validate.OrderFilter(), handler.GetOrders)...)
	orders.Get("/kitchen/active", append(owner, handler.GetKitchenOrders)...)
	orders.Get("/:orderId", append(owner, validate.GetById("orderId"), handler.GetOrderById)...)
	orders.Put("/:orderId/status", append(owner, validate.UpdateOrderStatus(), handler.UpdateOrderStatus)...)
	orders.Patch("/:orderId/charges", append(owner, validate.UpdateOrderCharges(), handler.UpdateOrderCharges)...)
	orders.Delete("/:orderId", append(owner, validate.GetById("orderId"), handler.CancelOrder)...)

	customers := api.Group("/customers", owner...)
	customers.Get("/", validate.CustomerFilter(), handler.GetCustomers)
	customers.Get("/analytics", handler.GetCustomerAnalytics)
	customers.Get("/:customerId", validate.GetById("customerId"), handler.GetCustomerById)
	customers.Get("/:customerId/tier", validate.GetById("customerId"), handler.GetCustomerTier)

	loyalty := api.Group("/loyalty", owner...)
	loyalty.Get("/program", handler.GetLoyaltyProgram)
	loyalty.Put("/program", validate.UpdateLoyaltyProgram(), handler.UpdateLoyaltyProgram)
	loyalty.Get("/rewards", handler.GetRewards)
	loyalty.Post("/rewards", validate.CreateReward(), handler.CreateReward)
	loyalty.Put("/rewards/:rewardId", validate.CreateReward(), handler.UpdateReward)
	loyalty.Delete("/rewards/:rewardId", validate.GetById("rewardId"), handler.DeleteReward)
	loyalty.Post("/rewards/:rewardId/redeem", validate.RedeemReward(), handler.RedeemReward)

	payments := api.Group("/payments", owner...)
	payments.Get("/", validate.PaymentFilter(), handler.GetPayments)
	payments.Post("/", validate.ProcessPayment(), handler.ProcessPayment)
	payments.Get("/:paymentId", validate.GetById("paymentId"), handler.GetPaymentById)
	payments.Post("/:paymentId/confirm", validate.ConfirmPayment(), handler.ConfirmPayment)
	payments.Post("/:paymentId/fail", validate.FailPayment(), handler.FailPayment)
	payments.Post("/:paymentId/refund", validate.RefundPayment(), handler.RefundPayment)

	staff := api.Group("/staff", owner...)
	staff.Get("/", validate.StaffFilter(), handler.GetStaffs)
	staff.Get("/timesheets", validate.DateRange(), handler.GetTimesheets)
	staff.Get("/:staffId", validate.GetById("staffId"), handler.GetStaffById)
	staff.Post("/", validate.CreateStaff(), handler.CreateStaff)
	staff.Put("/:staffId", validate.UpdateStaff(), handler.UpdateStaff)
	staff.Delete("/:staffId", validate.GetById("staffId"), handler.DeleteStaff)
	staff.Post("/:staffId/clock-in", validate.Clock(), handler.ClockIn)
	staff.Post("/:staffId/clock-out", validate.Clock(), handler.ClockOut)
	staff.Post("/:staffId/break/start", validate.StartBreak(), handler.StartBreak)
	staff.Post("/:staffId/break/end", validate.GetById("staffId"), handler.EndBreak)

	notifications := api.Group("/notifications", owner...)
	notifications.Get("/", validate.NotificationFilter(), handler.GetNotifications)
	notifications.Post("/", validate.CreateNotification(), handler.CreateNotification)
	notifications.Put("/read-all", handler.MarkAllNotificationsRead)
	notifications.Put("/:notificationId/read", validate.GetById("notificationId"), handler.MarkNotificationRead)
	notifications.Delete("/:notificationId", validate.GetById("notificationId"), handler.DeleteNotification)

	inventory := api.Group("/inventory", owner...)
	inventory.Get("/", handler.GetInventory)
	inventory.Get("/alerts", handler.GetInventoryAlerts)
	inventory.Get("/:itemId", validate.GetById("itemId"), handler.GetInventoryItemById)
	inventory.Post("/", validate.CreateInventoryItem(), handler.CreateInventoryItem)
	inventory.Put("/:itemId", validate.UpdateInventoryItem(), handler.UpdateInventoryItem)
	inventory.Post("/:itemId/restock", validate.Restock(), handler.RestockInventoryItem)
	inventory.Delete("/:itemId", validate.GetById("itemId"), handler.DeleteInventoryItem)

	qrcodes := api.Group("/qrcodes", owner...)
	qrcodes.Get("/", handler.GetQRCodes)
	qrcodes.Get("/:qrId", validate.GetById("qrId"), handler.GetQRCodeById)
	qrcodes.Get("/:qrId/image", validate.GetById("qrId"), handler.GetQRCodeImage)
	qrcodes.Post("/", validate.CreateQRCode(), handler.CreateQRCode)
	qrcodes.Put("/:qrId", validate.UpdateQRCode(), handler.UpdateQRCode)
	qrcodes.Delete("/:qrId", validate.GetById("qrId"), handler.DeleteQRCode)

	reports := api.Group("/reports", owner...)
	reports.Get("/sales", validate.SalesReport(), handler.GetSalesReport)
	reports.Get("/customers", handler.GetCustomerReport)
	reports.Get("/staff", validate.DateRange(), handler.GetStaffReport)
	reports.Get("/inventory", handler.GetInventoryReport)

	analytics := api.Group("/analytics", owner...)
	analytics.Get("/dashboard", handler.GetDashboard)

	deployments := api.Group("/deployments", owner...)
	deployments.Get("/", handler.GetDeployments)
	deployments.Post("/", handler.DeployWebsite)
	deployments.Get("/:deploymentId", handler.GetDeploymentById)

	uploads := api.Group("/uploads", owner...)
	uploads.Post("/signature", handler.GenerateSignature)

	app.Get("/ws/restaurants/:restaurantId", middleware.WebsocketAuth(), websocket.New(handler.WebSocketConnection))
}
