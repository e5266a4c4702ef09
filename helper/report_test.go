package helper

import (
	"strings"
	"testing"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportGroupsByDay(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	f.placeOrder(t, testNow.AddDate(0, 0, 1))
	cancelled := f.placeOrder(t, testNow.Add(time.Hour))
	_, err := CancelOrder(f.db, f.restaurant.ID, cancelled.OrderID, "owner", "", testNow)
	require.NoError(t, err)

	from := utils.StartOfDay(testNow)
	to := utils.EndOfDay(testNow.AddDate(0, 0, 1))
	report, err := SalesReport(f.db, f.restaurant.ID, from, to, "")
	require.NoError(t, err)

	assert.Equal(t, "day", report.GroupBy)
	assert.Equal(t, 2, report.Summary.TotalOrders)
	assert.Equal(t, 1, report.Summary.CancelledOrders)
	assert.Equal(t, 62.58, report.Summary.TotalRevenue)
	assert.Equal(t, 31.29, report.Summary.AverageOrder)
	assert.Equal(t, 2, report.Summary.ByOrderType[constants.ORDER_TYPE_DELIVERY])

	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2026-03-14", report.Buckets[0].Period)
	assert.Equal(t, "2026-03-15", report.Buckets[1].Period)
	assert.Equal(t, 1, report.Buckets[0].Orders)

	require.Len(t, report.TopItems, 1)
	assert.Equal(t, "Margherita", report.TopItems[0].Name)
	assert.Equal(t, 4, report.TopItems[0].Quantity)

	csv, err := SalesCSV(report)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "period,orders,revenue,tax,delivery_fees,discounts,average_ticket", lines[0])
	assert.Equal(t, "2026-03-14,1,31.29,2.30,5.99,0.00,31.29", lines[1])
}

func TestSalesReportByHour(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	f.placeOrder(t, testNow.Add(10*time.Minute))
	f.placeOrder(t, testNow.Add(2*time.Hour))

	report, err := SalesReport(f.db, f.restaurant.ID, utils.StartOfDay(testNow), utils.EndOfDay(testNow), "hour")
	require.NoError(t, err)
	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2026-03-14 12:00", report.Buckets[0].Period)
	assert.Equal(t, 2, report.Buckets[0].Orders)
	assert.Equal(t, "2026-03-14 14:00", report.Buckets[1].Period)
}

func TestDashboardComparesWithYesterday(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow.AddDate(0, 0, -1))
	f.placeOrder(t, testNow)
	f.placeOrder(t, testNow)

	stats, err := Dashboard(f.db, f.restaurant.ID, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TodayOrders)
	assert.EqualValues(t, 1, stats.YesterdayOrders)
	assert.Equal(t, 62.58, stats.TodayRevenue)
	assert.Equal(t, 100.0, stats.RevenueGrowth)
	assert.EqualValues(t, 3, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.TotalCustomers)
	assert.EqualValues(t, 1, stats.LowStockItems)
	assert.Len(t, stats.RecentOrders, 3)
}

func TestCustomerAndInventoryReports(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	f.placeOrder(t, testNow, func(in *model.PlaceOrderInput) {
		in.Customer = model.OrderCustomerInput{Name: "Ben", Phone: "5550002"}
	})
	f.placeOrder(t, testNow)

	customers, err := CustomerReportFor(f.db, f.restaurant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, customers.TotalCustomers)
	assert.EqualValues(t, 1, customers.Returning)
	assert.Equal(t, 69.0, customers.TotalSpent)
	assert.EqualValues(t, 2, customers.TierBreakdown["Bronze"])
	assert.Equal(t, "Ana", customers.TopCustomers[0].Name)

	_, err = UpdateInventoryItem(f.db, f.restaurant.ID, f.dough.ID, model.UpdateInventoryInput{CostPerUnit: floatPtr(0.5)})
	require.NoError(t, err)
	_, err = RestockInventoryItem(f.db, f.restaurant.ID, f.dough.ID, model.RestockInput{Quantity: 10}, testNow)
	require.NoError(t, err)

	inventory, err := InventoryReportFor(f.db, f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, inventory.Items, 1)
	assert.Equal(t, 10.0, inventory.Items[0].CurrentStock)
	assert.Equal(t, 5.0, inventory.TotalValue)
	assert.Zero(t, inventory.LowStock)
}
