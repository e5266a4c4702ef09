package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestOrderRecalculateTotal(t *testing.T) {
	o := Order{Subtotal: 26.50, Tax: 2.65, DeliveryFee: 5.99}
	o.RecalculateTotal()
	assert.InDelta(t, 35.14, o.FinalAmount, 0.001)

	o.Discount = 4.14
	assert.NoError(t, o.BeforeSave(nil))
	assert.InDelta(t, 31.00, o.FinalAmount, 0.001)
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Price: 5, Quantity: 2, Modifiers: datatypes.JSONSlice[OrderItemModifier]{{Name: "cheese", Price: 1.5}}}
	assert.InDelta(t, 13.0, item.LineTotal(), 0.0001)
}

func TestPaymentCanRefund(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		amount  float64
		want    bool
	}{
		{
			name:    "full amount on fresh payment",
			payment: Payment{Amount: 50, Status: "succeeded"},
			amount:  50,
			want:    true,
		},
		{
			name:    "more than paid",
			payment: Payment{Amount: 50, Status: "succeeded"},
			amount:  50.01,
			want:    false,
		},
		{
			name:    "not succeeded",
			payment: Payment{Amount: 50, Status: "pending"},
			amount:  1,
			want:    false,
		},
		{
			name: "only succeeded refunds count",
			payment: Payment{Amount: 50, Status: "succeeded", Refunds: []PaymentRefund{
				{Amount: 20, Status: "succeeded"},
				{Amount: 25, Status: "failed"},
			}},
			amount: 30,
			want:   true,
		},
		{
			name: "exceeds remaining",
			payment: Payment{Amount: 50, Status: "succeeded", Refunds: []PaymentRefund{
				{Amount: 20, Status: "succeeded"},
			}},
			amount: 30.5,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payment.CanRefund(tt.amount))
		})
	}
}

func TestPaymentRefundable(t *testing.T) {
	p := Payment{Amount: 10, Status: "succeeded", Refunds: []PaymentRefund{{Amount: 10, Status: "succeeded"}}}
	assert.False(t, p.Refundable())

	p.Refunds = nil
	assert.True(t, p.Refundable())

	p.Status = "refunded"
	assert.False(t, p.Refundable())
}

func TestTimesheetComputeHours(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	at := func(h, m int) *time.Time {
		v := time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
		return &v
	}

	t.Run("overtime after breaks", func(t *testing.T) {
		ts := Timesheet{ClockIn: in, ClockOut: at(19, 0), Breaks: []TimesheetBreak{
			{StartTime: *at(12, 0), EndTime: at(12, 30)},
			{StartTime: *at(15, 0), EndTime: at(15, 30)},
		}}
		ts.ComputeHours()
		assert.InDelta(t, 10.0, ts.TotalHours, 0.001)
		assert.InDelta(t, 8.0, ts.RegularHours, 0.001)
		assert.InDelta(t, 2.0, ts.OvertimeHours, 0.001)
	})

	t.Run("short shift", func(t *testing.T) {
		ts := Timesheet{ClockIn: in, ClockOut: at(12, 15)}
		ts.ComputeHours()
		assert.InDelta(t, 4.25, ts.TotalHours, 0.001)
		assert.InDelta(t, 4.25, ts.RegularHours, 0.001)
		assert.Zero(t, ts.OvertimeHours)
	})

	t.Run("open break is ignored", func(t *testing.T) {
		ts := Timesheet{ClockIn: in, ClockOut: at(10, 0), Breaks: []TimesheetBreak{{StartTime: *at(9, 0)}}}
		ts.ComputeHours()
		assert.InDelta(t, 2.0, ts.TotalHours, 0.001)
	})

	t.Run("still clocked in", func(t *testing.T) {
		ts := Timesheet{ClockIn: in}
		ts.ComputeHours()
		assert.Zero(t, ts.TotalHours)
	})
}

func TestRestaurantIsOpenAt(t *testing.T) {
	r := Restaurant{OpeningHours: datatypes.NewJSONType(OpeningHours{
		"monday": {Open: "10:00", Close: "22:00"},
		"friday": {Open: "18:00", Close: "02:00"},
		"sunday": {Closed: true},
	})}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, r.IsOpenAt(monday.Add(12*time.Hour)))
	assert.False(t, r.IsOpenAt(monday.Add(9*time.Hour)))
	assert.False(t, r.IsOpenAt(monday.Add(22*time.Hour)))

	friday := monday.AddDate(0, 0, 4)
	assert.True(t, r.IsOpenAt(friday.Add(23*time.Hour)))
	assert.True(t, r.IsOpenAt(friday.Add(1*time.Hour)))
	assert.False(t, r.IsOpenAt(friday.Add(12*time.Hour)))

	sunday := monday.AddDate(0, 0, 6)
	assert.False(t, r.IsOpenAt(sunday.Add(12*time.Hour)))

	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, r.IsOpenAt(tuesday), "days without hours are open")
}

func TestLoyaltyProgramBeforeCreateSeedsTiers(t *testing.T) {
	p := LoyaltyProgram{}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Len(t, p.Tiers, 4)
	assert.Equal(t, 1.0, p.Points.EarningRate)

	custom := LoyaltyProgram{Tiers: []LoyaltyTier{{Name: "Member"}}}
	assert.NoError(t, custom.BeforeCreate(nil))
	assert.Len(t, custom.Tiers, 1)
}
