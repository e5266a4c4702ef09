package helper

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/logger"
	"restaurant_manager/metrics"
	"restaurant_manager/model"
	"restaurant_manager/realtime"
	"restaurant_manager/utils"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderStatuses = map[string]bool{
	constants.ORDER_PENDING:          true,
	constants.ORDER_CONFIRMED:        true,
	constants.ORDER_PREPARING:        true,
	constants.ORDER_READY:            true,
	constants.ORDER_OUT_FOR_DELIVERY: true,
	constants.ORDER_DELIVERED:        true,
	constants.ORDER_COMPLETED:        true,
	constants.ORDER_CANCELLED:        true,
}

func IsCancellable(status string) bool {
	return status == constants.ORDER_PENDING || status == constants.ORDER_CONFIRMED
}

// NextOrderNumber bumps the (restaurant, day) sequence and formats ORD-<restaurant>-<YYYYMMDD>-<seq>.
// It must run inside the placement transaction.
func NextOrderNumber(tx *gorm.DB, restaurantID uint, now time.Time) (string, error) {
	day := now.Format("20060102")
	seq := model.OrderSequence{RestaurantID: restaurantID, Day: day}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return "", fmt.Errorf("init order sequence: %w", err)
	}
	err := tx.Model(&model.OrderSequence{}).
		Where("restaurant_id = ? AND day = ?", restaurantID, day).
		UpdateColumn("value", gorm.Expr("value + 1")).Error
	if err != nil {
		return "", fmt.Errorf("bump order sequence: %w", err)
	}
	if err := tx.Where("restaurant_id = ? AND day = ?", restaurantID, day).First(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%d-%s-%04d", restaurantID, day, seq.Value), nil
}

func placementResult(order *model.Order, repriced, duplicate bool) *model.PlaceOrderResult {
	estimated := order.CreatedAt.Add(constants.ESTIMATED_READY_MINUTES * time.Minute)
	if order.EstimatedReadyTime != nil {
		estimated = *order.EstimatedReadyTime
	}
	return &model.PlaceOrderResult{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		EstimatedTime: estimated,
		TotalAmount:   order.FinalAmount,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Repriced:      repriced,
		Duplicate:     duplicate,
	}
}

func findByIdempotencyKey(db *gorm.DB, restaurantID uint, key string) (*model.Order, error) {
	var order model.Order
	err := db.Where("restaurant_id = ? AND idempotency_key = ?", restaurantID, key).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// PlaceOrder is the public checkout. Order, items, history, customer aggregate, stock and
// table stats are written in one transaction; realtime events and the owner notification
// follow the commit and never fail it.
func PlaceOrder(db *gorm.DB, input model.PlaceOrderInput, now time.Time) (*model.PlaceOrderResult, error) {
	timer := metrics.NewTimer()
	log := logger.WithRestaurant(input.RestaurantID)

	var restaurant model.Restaurant
	if err := db.First(&restaurant, input.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !restaurant.IsActive || !restaurant.OrderingEnabled {
		return nil, ErrOrderingDisabled
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key != "" {
		existing, err := findByIdempotencyKey(db, restaurant.ID, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return placementResult(existing, false, true), nil
		}
	}

	ids := lo.Uniq(lo.Map(input.Items, func(i model.PlaceOrderItemInput, _ int) uint { return i.ItemID() }))
	var menuItems []model.MenuItem
	if err := db.Where("restaurant_id = ? AND id IN ?", restaurant.ID, ids).Find(&menuItems).Error; err != nil {
		return nil, err
	}
	menu := lo.KeyBy(menuItems, func(m model.MenuItem) uint { return m.ID })

	items, repriced, err := PriceItems(menu, input.Items)
	if err != nil {
		return nil, err
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = constants.ORDER_TYPE_TAKEAWAY
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash-on-delivery"
	}

	charges := ComputeCharges(&restaurant, orderType, items)
	if minimum := restaurant.PaymentSettings.MinimumOrder; minimum > 0 && charges.Subtotal < minimum {
		return nil, ErrBelowMinimumOrder
	}

	estimated := now.Add(constants.ESTIMATED_READY_MINUTES * time.Minute)
	order := model.Order{
		RestaurantID: restaurant.ID,
		CustomerInfo: customerSnapshot(input.Customer),
		Items:        items,
		OrderType:    orderType,
		Status:       constants.ORDER_PENDING,
		StatusHistory: []model.OrderStatusHistory{
			{Status: constants.ORDER_PENDING, Timestamp: now, UpdatedBy: "customer", Notes: "Order placed"},
		},
		PaymentMethod:      paymentMethod,
		PaymentStatus:      constants.ORDER_PAYMENT_PENDING,
		Subtotal:           charges.Subtotal,
		DeliveryFee:        charges.DeliveryFee,
		Tax:                charges.Tax,
		EstimatedReadyTime: &estimated,
		TableNumber:        input.TableNumber,
		Notes:              input.Notes,
	}
	if key != "" {
		order.IdempotencyKey = &key
	}
	order.CreatedAt = now

	var lowStock []model.InventoryItem
	err = db.Transaction(func(tx *gorm.DB) error {
		number, err := NextOrderNumber(tx, restaurant.ID, now)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		customerID, err := UpsertCustomer(tx, restaurant.ID, input.Customer, charges.Subtotal, now)
		if err != nil {
			return err
		}
		order.CustomerID = customerID

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		lowStock, err = deductInventory(tx, restaurant.ID, menu, items)
		if err != nil {
			return err
		}
		if order.TableNumber != "" {
			if err := recordTableOrder(tx, restaurant.ID, order.TableNumber, order.FinalAmount, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// a concurrent request with the same key won the unique index
		if key != "" {
			if existing, ferr := findByIdempotencyKey(db, restaurant.ID, key); ferr == nil && existing != nil {
				return placementResult(existing, false, true), nil
			}
		}
		return nil, err
	}

	timer.ObserveDuration(metrics.OrderPlacementDuration)
	metrics.OrdersPlacedTotal.WithLabelValues(orderType).Inc()

	realtime.Emit(restaurant.ID, constants.EVENT_ORDER_NEW, orderEvent(&order))
	for _, item := range lowStock {
		realtime.Emit(restaurant.ID, constants.EVENT_INVENTORY_LOW, inventoryEvent(item))
	}
	_, nerr := CreateNotification(db, restaurant.ID, model.CreateNotificationInput{
		RecipientID:    restaurant.OwnerID,
		RecipientModel: "User",
		Type:           "order_new",
		Priority:       "high",
		Title:          "New order " + order.OrderNumber,
		Message:        fmt.Sprintf("%s placed a %s order for %.2f", order.CustomerInfo.Name, orderType, order.FinalAmount),
		Data:           map[string]any{"orderId": order.ID, "orderNumber": order.OrderNumber},
	}, now)
	if nerr != nil {
		log.Warn().Err(nerr).Str("order", order.OrderNumber).Msg("owner notification failed")
	}

	log.Info().Str("order", order.OrderNumber).Float64("total", order.FinalAmount).Msg("order placed")
	return placementResult(&order, repriced, false), nil
}

func customerSnapshot(in model.OrderCustomerInput) model.CustomerSnapshot {
	snap := model.CustomerSnapshot{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
	}
	if in.Address != nil {
		snap.Street = in.Address.Street
		snap.City = in.Address.City
		snap.State = in.Address.State
		snap.ZipCode = in.Address.ZipCode
	}
	return snap
}

// UpsertCustomer adds one order to the (restaurant, phone) aggregate, creating it on first sight.
// Aggregates only grow: totalOrders +1, totalSpent += subtotal, loyaltyPoints += floor(subtotal).
func UpsertCustomer(tx *gorm.DB, restaurantID uint, in model.OrderCustomerInput, subtotal float64, now time.Time) (*uint, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, nil
	}
	seed := model.Customer{RestaurantID: restaurantID, Phone: phone, Name: strings.TrimSpace(in.Name)}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("init customer: %w", err)
	}

	updates := map[string]any{
		"total_orders":    gorm.Expr("total_orders + 1"),
		"total_spent":     gorm.Expr("total_spent + ?", subtotal),
		"loyalty_points":  gorm.Expr("loyalty_points + ?", LoyaltyPointsFor(subtotal)),
		"last_order_date": now,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		updates["name"] = name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		updates["email"] = strings.ToLower(email)
	}
	err := tx.Model(&model.Customer{}).
		Where("restaurant_id = ? AND phone = ?", restaurantID, phone).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	var customer model.Customer
	if err := tx.Select("id").Where("restaurant_id = ? AND phone = ?", restaurantID, phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer.ID, nil
}

func deductInventory(tx *gorm.DB, restaurantID uint, menu map[uint]model.MenuItem, items []model.OrderItem) ([]model.InventoryItem, error) {
	usage := map[uint]float64{}
	for _, item := range items {
		for _, ing := range menu[item.MenuItemID].Ingredients {
			if ing.InventoryItemID == nil || ing.Quantity <= 0 {
				continue
			}
			usage[*ing.InventoryItemID] += ing.Quantity * float64(item.Quantity)
		}
	}
	if len(usage) == 0 {
		return nil, nil
	}
	ids := lo.Keys(usage)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var stock []model.InventoryItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("restaurant_id = ? AND id IN ? AND auto_deduct = ?", restaurantID, ids, true).
		Order("id").Find(&stock).Error
	if err != nil {
		return nil, err
	}

	var low []model.InventoryItem
	for i := range stock {
		item := &stock[i]
		item.CurrentStock = math.Max(item.CurrentStock-usage[item.ID], 0)
		if err := tx.Model(item).UpdateColumn("current_stock", item.CurrentStock).Error; err != nil {
			return nil, fmt.Errorf("deduct %s: %w", item.Name, err)
		}
		if item.IsLow() {
			low = append(low, *item)
		}
	}
	return low, nil
}

func recordTableOrder(tx *gorm.DB, restaurantID uint, table string, total float64, now time.Time) error {
	return tx.Model(&model.TableQRCode{}).
		Where("restaurant_id = ? AND table_number = ?", restaurantID, table).
		Updates(map[string]any{
			"total_orders":    gorm.Expr("total_orders + 1"),
			"total_revenue":   gorm.Expr("total_revenue + ?", total),
			"last_order_date": now,
		}).Error
}

func orderEvent(order *model.Order) map[string]any {
	return map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"orderType":   order.OrderType,
		"customer":    order.CustomerInfo.Name,
		"totalAmount": order.FinalAmount,
		"tableNumber": order.TableNumber,
		"items":       len(order.Items),
	}
}

func inventoryEvent(item model.InventoryItem) map[string]any {
	return map[string]any{
		"itemId":       item.ID,
		"name":         item.Name,
		"currentStock": item.CurrentStock,
		"reorderPoint": item.ReorderPoint,
		"unit":         item.Unit,
	}
}

// GetOrder loads an order with its lines and history, scoped to the restaurant.
func GetOrder(db *gorm.DB, restaurantID, orderID uint) (*model.Order, error) {
	var order model.Order
	err := db.Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func GetOrderByNumber(db *gorm.DB, number string) (*model.Order, error) {
	var order model.Order
	err := db.Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("order_number = ?", number).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func ListOrders(db *gorm.DB, restaurantID uint, filter model.OrderFilter) ([]model.Order, int64, error) {
	query := db.Model(&model.Order{}).Where("restaurant_id = ?", restaurantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []model.Order
	err := utils.ApplyPagination(query.Preload("Items").Order("created_at DESC, id DESC"), filter.Limit, filter.Page).
		Find(&orders).Error
	return orders, total, err
}

// ListKitchenOrders returns confirmed and preparing orders, oldest first.
func ListKitchenOrders(db *gorm.DB, restaurantID uint) ([]model.Order, error) {
	var orders []model.Order
	err := db.Preload("Items").
		Where("restaurant_id = ? AND status IN ?", restaurantID, []string{constants.ORDER_CONFIRMED, constants.ORDER_PREPARING}).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus applies any known status. Only cancellation is restricted.
func UpdateOrderStatus(db *gorm.DB, restaurantID, orderID uint, input model.UpdateOrderStatusInput, actor string, now time.Time) (*model.Order, error) {
	if !orderStatuses[input.Status] {
		return nil, ErrInvalidOrderStatus
	}

	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if input.Status == constants.ORDER_CANCELLED && !IsCancellable(order.Status) {
			return ErrOrderNotCancellable
		}

		order.Status = input.Status
		switch input.Status {
		case constants.ORDER_READY:
			order.ActualReadyTime = &now
		case constants.ORDER_DELIVERED, constants.ORDER_COMPLETED:
			order.DeliveredAt = &now
			order.PaymentStatus = constants.ORDER_PAYMENT_PAID
		case constants.ORDER_CANCELLED:
			order.CancelledAt = &now
		}
		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return err
		}
		return tx.Create(&model.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    input.Status,
			Timestamp: now,
			UpdatedBy: actor,
			Notes:     input.Notes,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(input.Status).Inc()
	event := orderEvent(&order)
	realtime.Emit(restaurantID, constants.EVENT_ORDER_UPDATE, event)
	switch input.Status {
	case constants.ORDER_READY:
		realtime.Emit(restaurantID, constants.EVENT_KITCHEN_ORDER_READY, event)
	case constants.ORDER_CANCELLED:
		realtime.Emit(restaurantID, constants.EVENT_ORDER_CANCELLED, event)
	}

	return GetOrder(db, restaurantID, orderID)
}

func CancelOrder(db *gorm.DB, restaurantID, orderID uint, actor, reason string, now time.Time) (*model.Order, error) {
	if reason == "" {
		reason = "Cancelled by restaurant"
	}
	return UpdateOrderStatus(db, restaurantID, orderID, model.UpdateOrderStatusInput{
		Status: constants.ORDER_CANCELLED,
		Notes:  reason,
	}, actor, now)
}

// UpdateOrderCharges adjusts discount or delivery fee; the save hook keeps finalAmount consistent.
func UpdateOrderCharges(db *gorm.DB, restaurantID, orderID uint, input model.UpdateOrderChargesInput) (*model.Order, error) {
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if input.Discount != nil {
			order.Discount = model.RoundMoney(*input.Discount)
		}
		if input.DeliveryFee != nil {
			order.DeliveryFee = model.RoundMoney(*input.DeliveryFee)
		}
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	realtime.Emit(restaurantID, constants.EVENT_ORDER_UPDATE, orderEvent(&order))
	return GetOrder(db, restaurantID, orderID)
}
