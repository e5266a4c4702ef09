package helper

import (
	"strings"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceiptNumber(t *testing.T) {
	n := NewReceiptNumber(testNow)
	require.Len(t, n, 11)
	assert.True(t, strings.HasPrefix(n, "RC"))
	assert.Equal(t, strings.ToUpper(n), n)
	for _, ch := range n[8:] {
		assert.True(t, strings.ContainsRune(receiptAlphabet, ch), string(ch))
	}
}

func TestProcessPaymentSkipsTakenReceiptNumbers(t *testing.T) {
	f := newFixture(t)
	first := f.placeOrder(t, testNow)
	second := f.placeOrder(t, testNow)

	suffixes := []string{"AAA", "AAA", "B7Z"}
	prev := receiptSuffix
	receiptSuffix = func() string {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}
	t.Cleanup(func() { receiptSuffix = prev })

	a, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: first.OrderID, Method: "cash"}, testNow)
	require.NoError(t, err)
	b, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: second.OrderID, Method: "cash"}, testNow)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(a.ReceiptNumber, "AAA"))
	assert.True(t, strings.HasSuffix(b.ReceiptNumber, "B7Z"))
	assert.Empty(t, suffixes)
}

func TestCashPaymentSettlesOrder(t *testing.T) {
	f := newFixture(t)
	res := f.placeOrder(t, testNow)

	payment, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: res.OrderID, Method: "cash"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_SUCCEEDED, payment.Status)
	assert.Equal(t, 31.29, payment.Amount)
	assert.Equal(t, "USD", payment.Currency)
	require.NotNil(t, payment.ProcessedAt)

	order, err := GetOrder(f.db, f.restaurant.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAYMENT_PAID, order.PaymentStatus)

	_, err = ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: res.OrderID, Method: "card"}, testNow)
	assert.ErrorIs(t, err, ErrOrderAlreadyPaid)
}

func TestCardPaymentConfirmAndFail(t *testing.T) {
	f := newFixture(t)
	first := f.placeOrder(t, testNow)
	second := f.placeOrder(t, testNow)

	pending, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: first.OrderID, Method: "card", Provider: "stripe"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_PENDING, pending.Status)

	confirmed, err := ConfirmPayment(f.db, f.restaurant.ID, pending.ID, model.ConfirmPaymentInput{TransactionID: "pi_123"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_SUCCEEDED, confirmed.Status)
	assert.Equal(t, "pi_123", confirmed.TransactionID)

	_, err = ConfirmPayment(f.db, f.restaurant.ID, pending.ID, model.ConfirmPaymentInput{}, testNow)
	assert.ErrorIs(t, err, ErrPaymentNotPending)

	other, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: second.OrderID, Method: "card"}, testNow)
	require.NoError(t, err)
	failed, err := FailPayment(f.db, f.restaurant.ID, other.ID, model.FailPaymentInput{Reason: "card declined"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_FAILED, failed.Status)
	assert.Equal(t, "card declined", failed.FailureReason)

	order, err := GetOrder(f.db, f.restaurant.ID, second.OrderID)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAYMENT_FAILED, order.PaymentStatus)
}

func TestRefundsNeverExceedAmount(t *testing.T) {
	f := newFixture(t)
	res := f.placeOrder(t, testNow)
	payment, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: res.OrderID, Method: "cash"}, testNow)
	require.NoError(t, err)

	partial, err := RefundPayment(f.db, f.restaurant.ID, payment.ID, model.RefundInput{Amount: 10, Reason: "cold pizza"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_SUCCEEDED, partial.Status)
	assert.Equal(t, 21.29, partial.RefundableAmount())
	require.Len(t, partial.Refunds, 1)
	assert.True(t, strings.HasPrefix(partial.Refunds[0].RefundID, "rf_"))

	_, err = RefundPayment(f.db, f.restaurant.ID, payment.ID, model.RefundInput{Amount: 25, Reason: "too much"}, testNow)
	assert.ErrorIs(t, err, ErrRefundNotAllowed)

	full, err := RefundPayment(f.db, f.restaurant.ID, payment.ID, model.RefundInput{Amount: 21.29, Reason: "rest"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_REFUNDED, full.Status)
	assert.False(t, full.Refundable())

	_, err = RefundPayment(f.db, f.restaurant.ID, payment.ID, model.RefundInput{Amount: 1, Reason: "again"}, testNow)
	assert.ErrorIs(t, err, ErrRefundNotAllowed)

	order, err := GetOrder(f.db, f.restaurant.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAYMENT_REFUNDED, order.PaymentStatus)
}

func TestPendingPaymentIsNotRefundable(t *testing.T) {
	f := newFixture(t)
	res := f.placeOrder(t, testNow)
	payment, err := ProcessPayment(f.db, f.restaurant, model.ProcessPaymentInput{OrderID: res.OrderID, Method: "card"}, testNow)
	require.NoError(t, err)

	_, err = RefundPayment(f.db, f.restaurant.ID, payment.ID, model.RefundInput{Amount: 1, Reason: "x"}, testNow)
	assert.ErrorIs(t, err, ErrRefundNotAllowed)

	payments, total, err := ListPayments(f.db, f.restaurant.ID, model.PaymentFilter{Status: constants.PAYMENT_PENDING})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, payment.ID, payments[0].ID)
}
