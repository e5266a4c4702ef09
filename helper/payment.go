package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const receiptAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// receiptAttempts bounds the retries when a generated receipt number is already taken.
const receiptAttempts = 5

var receiptSuffix = func() string {
	id := uuid.New()
	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteByte(receiptAlphabet[int(id[i])%len(receiptAlphabet)])
	}
	return b.String()
}

// NewReceiptNumber returns RC + the last 6 digits of the unix millis + 3 random uppercase alphanumerics.
func NewReceiptNumber(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return "RC" + ms[len(ms)-6:] + receiptSuffix()
}

func uniqueReceiptNumber(tx *gorm.DB, now time.Time) (string, error) {
	for i := 0; i < receiptAttempts; i++ {
		receipt := NewReceiptNumber(now)
		var taken int64
		if err := tx.Model(&model.Payment{}).Where("receipt_number = ?", receipt).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return receipt, nil
		}
	}
	return "", ErrReceiptNumberExhausted
}

func findPayment(tx *gorm.DB, restaurantID, id uint, lock bool) (*model.Payment, error) {
	var payment model.Payment
	q := tx.Preload("Refunds")
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func GetPayment(db *gorm.DB, restaurantID, id uint) (*model.Payment, error) {
	return findPayment(db, restaurantID, id, false)
}

// ProcessPayment records a payment for an order. Cash settles immediately and marks the order
// paid; other methods stay pending until confirmed or failed.
func ProcessPayment(db *gorm.DB, restaurant *model.Restaurant, input model.ProcessPaymentInput, now time.Time) (*model.Payment, error) {
	var payment model.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND restaurant_id = ?", input.OrderID, restaurant.ID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus == constants.ORDER_PAYMENT_PAID {
			return ErrOrderAlreadyPaid
		}

		amount := order.FinalAmount
		if input.Amount != nil {
			amount = model.RoundMoney(*input.Amount)
		}
		provider := input.Provider
		if provider == "" {
			provider = "manual"
		}
		currency := restaurant.PaymentSettings.Currency
		if currency == "" {
			currency = "USD"
		}

		receipt, err := uniqueReceiptNumber(tx, now)
		if err != nil {
			return err
		}

		payment = model.Payment{
			RestaurantID:  restaurant.ID,
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			Method:        input.Method,
			Provider:      provider,
			Amount:        amount,
			Currency:      currency,
			Tax:           order.Tax,
			Tip:           model.RoundMoney(input.Tip),
			Fees:          input.Fees,
			Status:        constants.PAYMENT_PENDING,
			ReceiptNumber: receipt,
		}
		if input.CustomerID != nil {
			payment.CustomerID = input.CustomerID
		}
		if input.Method == "cash" {
			payment.Status = constants.PAYMENT_SUCCEEDED
			payment.ProcessedAt = &now
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if payment.Status == constants.PAYMENT_SUCCEEDED {
			return setOrderPaymentStatus(tx, order.ID, constants.ORDER_PAYMENT_PAID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.WithRestaurant(restaurant.ID).Info().
		Str("receipt", payment.ReceiptNumber).Str("method", payment.Method).Str("status", payment.Status).
		Msg("payment recorded")
	return &payment, nil
}

func setOrderPaymentStatus(tx *gorm.DB, orderID uint, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).UpdateColumn("payment_status", status).Error
}

func ConfirmPayment(db *gorm.DB, restaurantID, id uint, input model.ConfirmPaymentInput, now time.Time) (*model.Payment, error) {
	var payment *model.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = findPayment(tx, restaurantID, id, true)
		if err != nil {
			return err
		}
		if payment.Status != constants.PAYMENT_PENDING && payment.Status != constants.PAYMENT_PROCESSING {
			return ErrPaymentNotPending
		}
		payment.Status = constants.PAYMENT_SUCCEEDED
		payment.TransactionID = input.TransactionID
		payment.ProcessedAt = &now
		if err := tx.Omit(clause.Associations).Save(payment).Error; err != nil {
			return err
		}
		return setOrderPaymentStatus(tx, payment.OrderID, constants.ORDER_PAYMENT_PAID)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func FailPayment(db *gorm.DB, restaurantID, id uint, input model.FailPaymentInput, now time.Time) (*model.Payment, error) {
	var payment *model.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = findPayment(tx, restaurantID, id, true)
		if err != nil {
			return err
		}
		if payment.Status != constants.PAYMENT_PENDING && payment.Status != constants.PAYMENT_PROCESSING {
			return ErrPaymentNotPending
		}
		payment.Status = constants.PAYMENT_FAILED
		payment.FailureReason = input.Reason
		payment.ProcessedAt = &now
		if err := tx.Omit(clause.Associations).Save(payment).Error; err != nil {
			return err
		}
		return setOrderPaymentStatus(tx, payment.OrderID, constants.ORDER_PAYMENT_FAILED)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// RefundPayment issues a manual refund. A refund that exhausts the payment moves it and its
// order to refunded; a partial one leaves the payment succeeded so further refunds are possible.
func RefundPayment(db *gorm.DB, restaurantID, id uint, input model.RefundInput, now time.Time) (*model.Payment, error) {
	var payment *model.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = findPayment(tx, restaurantID, id, true)
		if err != nil {
			return err
		}
		amount := model.RoundMoney(input.Amount)
		if !payment.CanRefund(amount) {
			return ErrRefundNotAllowed
		}

		refund := model.PaymentRefund{
			PaymentID:   payment.ID,
			Amount:      amount,
			Reason:      input.Reason,
			RefundID:    "rf_" + uuid.NewString(),
			Status:      constants.REFUND_SUCCEEDED,
			ProcessedAt: &now,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}
		payment.Refunds = append(payment.Refunds, refund)

		if payment.RefundableAmount() <= 0 {
			payment.Status = constants.PAYMENT_REFUNDED
			if err := tx.Omit(clause.Associations).Save(payment).Error; err != nil {
				return err
			}
			return setOrderPaymentStatus(tx, payment.OrderID, constants.ORDER_PAYMENT_REFUNDED)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func ListPayments(db *gorm.DB, restaurantID uint, filter model.PaymentFilter) ([]model.Payment, int64, error) {
	query := db.Model(&model.Payment{}).Where("restaurant_id = ?", restaurantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var payments []model.Payment
	err := utils.ApplyPagination(query.Preload("Refunds").Order("created_at DESC, id DESC"), filter.Limit, filter.Page).
		Find(&payments).Error
	return payments, total, err
}
