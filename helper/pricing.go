package helper

import (
	"math"
	"strconv"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/samber/lo"
	"gorm.io/datatypes"
)

type PricingDefaults struct {
	TaxRate     float64
	DeliveryFee float64
}

// Defaults seed the payment settings of a new restaurant.
var Defaults = PricingDefaults{TaxRate: 0.10, DeliveryFee: 5.99}

// Charges is the money breakdown of an order before it is persisted.
type Charges struct {
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Discount    float64
}

func (c Charges) Final() float64 {
	return model.RoundMoney(c.Subtotal + c.DeliveryFee + c.Tax - c.Discount)
}

// PriceItems snapshots the submitted lines against the live menu.
// Catalog prices win over submitted ones; repriced reports whether any submitted price differed.
func PriceItems(menu map[uint]model.MenuItem, lines []model.PlaceOrderItemInput) ([]model.OrderItem, bool, error) {
	repriced := false
	items := make([]model.OrderItem, 0, len(lines))

	for _, line := range lines {
		id := line.ItemID()
		if id == 0 {
			return nil, false, ErrMenuItemRequired
		}
		menuItem, ok := menu[id]
		if !ok {
			return nil, false, ErrMenuItemNotFound
		}
		if !menuItem.IsAvailable {
			return nil, false, ErrMenuItemUnavailable
		}
		if line.Price > 0 && !moneyEqual(line.Price, menuItem.Price) {
			repriced = true
		}

		modifiers := make([]model.OrderItemModifier, 0, len(line.Modifiers))
		for _, m := range line.Modifiers {
			price, ok := menuItem.ModifierPrice(m.Name)
			if !ok {
				return nil, false, ErrUnknownModifier
			}
			if m.Price > 0 && !moneyEqual(m.Price, price) {
				repriced = true
			}
			modifiers = append(modifiers, model.OrderItemModifier{Name: m.Name, Price: price})
		}

		items = append(items, model.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            line.Quantity,
			Category:            menuItem.Category,
			Modifiers:           datatypes.JSONSlice[model.OrderItemModifier](modifiers),
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return items, repriced, nil
}

// ComputeCharges derives subtotal, tax and delivery fee from the restaurant's payment
// settings. Only delivery orders carry a fee. Zero rates are honored.
func ComputeCharges(restaurant *model.Restaurant, orderType string, items []model.OrderItem) Charges {
	subtotal := model.RoundMoney(lo.SumBy(items, func(i model.OrderItem) float64 {
		return i.LineTotal()
	}))

	taxRate := restaurant.PaymentSettings.TaxRate
	fee := 0.0
	if orderType == constants.ORDER_TYPE_DELIVERY {
		fee = restaurant.PaymentSettings.DeliveryFee
	}

	return Charges{
		Subtotal:    subtotal,
		Tax:         model.RoundMoney(subtotal * taxRate),
		DeliveryFee: fee,
	}
}

// LoyaltyPointsFor is floor(subtotal).
func LoyaltyPointsFor(subtotal float64) int {
	return int(math.Floor(subtotal))
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
