package model

import "time"

type PaymentFees struct {
	Processing float64 `json:"processing"`
	Service    float64 `json:"service"`
	Platform   float64 `json:"platform"`
}

type PaymentRefund struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PaymentID   uint       `gorm:"index" json:"paymentId"`
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason"`
	RefundID    string     `gorm:"size:64" json:"refundId"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Payment struct {
	DTO
	RestaurantID  uint            `gorm:"index" json:"restaurantId"`
	OrderID       uint            `gorm:"index" json:"orderId"`
	CustomerID    *uint           `json:"customerId,omitempty"`
	Method        string          `json:"method"`
	Provider      string          `json:"provider"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Tax           float64         `json:"tax"`
	Tip           float64         `json:"tip"`
	Fees          PaymentFees     `gorm:"embedded;embeddedPrefix:fee_" json:"fees"`
	Status        string          `gorm:"index" json:"status"`
	Refunds       []PaymentRefund `gorm:"foreignKey:PaymentID" json:"refunds"`
	ReceiptNumber string          `gorm:"uniqueIndex;size:20" json:"receiptNumber"`
	TransactionID string          `json:"transactionId"`
	FailureReason string          `json:"failureReason"`
	ProcessedAt   *time.Time      `json:"processedAt"`
}

// TotalRefunded sums succeeded refunds only.
func (p *Payment) TotalRefunded() float64 {
	total := 0.0
	for _, r := range p.Refunds {
		if r.Status == "succeeded" {
			total += r.Amount
		}
	}
	return RoundMoney(total)
}

func (p *Payment) RefundableAmount() float64 {
	return RoundMoney(p.Amount - p.TotalRefunded())
}

// CanRefund reports whether amount can still be refunded. Only succeeded payments are refundable.
func (p *Payment) CanRefund(amount float64) bool {
	if p.Status != "succeeded" {
		return false
	}
	return amount <= p.RefundableAmount()
}

// Refundable reports whether any amount is left to refund.
func (p *Payment) Refundable() bool {
	if p.Status != "succeeded" {
		return false
	}
	return p.RefundableAmount() > 0
}

type PaymentSettingsView struct {
	PaymentSettings
	RestaurantID uint `json:"restaurantId"`
}

type ProcessPaymentInput struct {
	OrderID    uint        `json:"orderId" validate:"required"`
	Method     string      `json:"method" validate:"required,oneof=card cash bank_transfer digital_wallet crypto"`
	Provider   string      `json:"provider" validate:"omitempty,oneof=stripe paypal square manual razorpay"`
	Amount     *float64    `json:"amount" validate:"omitempty,gt=0"`
	Tip        float64     `json:"tip" validate:"gte=0"`
	Fees       PaymentFees `json:"fees"`
	CustomerID *uint       `json:"customerId"`
}

type FailPaymentInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ConfirmPaymentInput struct {
	TransactionID string `json:"transactionId" validate:"max=120"`
}

type RefundInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string  `json:"reason" validate:"required,max=500"`
}

type PaymentFilter struct {
	Status string `query:"status"`
	Method string `query:"method"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}
