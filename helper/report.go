package helper

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SalesReport aggregates non-cancelled orders in [from, to]. Grouping is done in Go so the same
// code runs on every supported database.
func SalesReport(db *gorm.DB, restaurantID uint, from, to time.Time, groupBy string) (*model.SalesReport, error) {
	if groupBy == "" {
		groupBy = "day"
	}
	var orders []model.Order
	err := db.Preload("Items").
		Where("restaurant_id = ? AND created_at >= ? AND created_at <= ?", restaurantID, from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	report := &model.SalesReport{
		From:    from.Format(utils.DateLayout),
		To:      to.Format(utils.DateLayout),
		GroupBy: groupBy,
		Summary: model.SalesSummary{ByOrderType: map[string]int{}},
	}

	buckets := map[string]*model.SalesBucket{}
	items := map[string]*model.TopItem{}
	for _, o := range orders {
		if o.Status == constants.ORDER_CANCELLED {
			report.Summary.CancelledOrders++
			continue
		}
		key := utils.PeriodKey(o.CreatedAt.In(from.Location()), groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &model.SalesBucket{Period: key}
			buckets[key] = b
		}
		b.Orders++
		b.Revenue += o.FinalAmount
		b.Tax += o.Tax
		b.DeliveryFees += o.DeliveryFee
		b.Discounts += o.Discount

		report.Summary.TotalOrders++
		report.Summary.TotalRevenue += o.FinalAmount
		report.Summary.ByOrderType[o.OrderType]++

		for _, it := range o.Items {
			t, ok := items[it.Name]
			if !ok {
				t = &model.TopItem{Name: it.Name}
				items[it.Name] = t
			}
			t.Quantity += it.Quantity
			t.Revenue += it.LineTotal()
		}
	}

	report.Buckets = lo.Map(lo.Values(buckets), func(b *model.SalesBucket, _ int) model.SalesBucket {
		b.Revenue = model.RoundMoney(b.Revenue)
		b.Tax = model.RoundMoney(b.Tax)
		b.DeliveryFees = model.RoundMoney(b.DeliveryFees)
		b.Discounts = model.RoundMoney(b.Discounts)
		if b.Orders > 0 {
			b.AverageTicket = model.RoundMoney(b.Revenue / float64(b.Orders))
		}
		return *b
	})
	sort.Slice(report.Buckets, func(i, j int) bool { return report.Buckets[i].Period < report.Buckets[j].Period })

	top := lo.Map(lo.Values(items), func(t *model.TopItem, _ int) model.TopItem {
		t.Revenue = model.RoundMoney(t.Revenue)
		return *t
	})
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 10 {
		top = top[:10]
	}
	report.TopItems = top

	report.Summary.TotalRevenue = model.RoundMoney(report.Summary.TotalRevenue)
	if report.Summary.TotalOrders > 0 {
		report.Summary.AverageOrder = model.RoundMoney(report.Summary.TotalRevenue / float64(report.Summary.TotalOrders))
	}
	return report, nil
}

// SalesCSV renders the buckets of a sales report as CSV.
func SalesCSV(report *model.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"period", "orders", "revenue", "tax", "delivery_fees", "discounts", "average_ticket"}}
	for _, b := range report.Buckets {
		rows = append(rows, []string{
			b.Period,
			strconv.Itoa(b.Orders),
			money(b.Revenue),
			money(b.Tax),
			money(b.DeliveryFees),
			money(b.Discounts),
			money(b.AverageTicket),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func CustomerReportFor(db *gorm.DB, restaurantID uint) (*model.CustomerReport, error) {
	var customers []model.Customer
	if err := db.Where("restaurant_id = ?", restaurantID).Order("total_spent DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	program, err := GetLoyaltyProgram(db, restaurantID)
	if err != nil {
		return nil, err
	}

	report := &model.CustomerReport{
		TotalCustomers: int64(len(customers)),
		TierBreakdown:  map[string]int64{},
	}
	for _, c := range customers {
		report.TotalSpent += c.TotalSpent
		if c.TotalOrders > 1 {
			report.Returning++
		}
		tier, _ := EvaluateTier(program.Tiers, c.LoyaltyPoints)
		name := "None"
		if tier != nil {
			name = tier.Name
		}
		report.TierBreakdown[name]++
	}
	report.TotalSpent = model.RoundMoney(report.TotalSpent)
	if report.TotalCustomers > 0 {
		report.AverageLifetime = model.RoundMoney(report.TotalSpent / float64(report.TotalCustomers))
	}
	report.TopCustomers = customers[:min(len(customers), 10)]
	return report, nil
}

func StaffHoursReport(db *gorm.DB, restaurantID uint, from, to time.Time) ([]model.StaffHoursRow, error) {
	var staff []model.Staff
	if err := db.Where("restaurant_id = ?", restaurantID).Find(&staff).Error; err != nil {
		return nil, err
	}
	sheets, err := ListTimesheets(db, restaurantID, 0, from, to)
	if err != nil {
		return nil, err
	}
	byStaff := lo.GroupBy(sheets, func(t model.Timesheet) uint { return t.StaffID })

	rows := make([]model.StaffHoursRow, 0, len(staff))
	for _, s := range staff {
		own := byStaff[s.ID]
		if len(own) == 0 {
			continue
		}
		row := model.StaffHoursRow{StaffID: s.ID, Name: s.Name, Role: s.Role}
		for _, t := range own {
			if t.ClockOut == nil {
				continue
			}
			row.Shifts++
			row.TotalHours += t.TotalHours
			row.RegularHours += t.RegularHours
			row.OvertimeHours += t.OvertimeHours
		}
		row.TotalHours = model.RoundMoney(row.TotalHours)
		row.RegularHours = model.RoundMoney(row.RegularHours)
		row.OvertimeHours = model.RoundMoney(row.OvertimeHours)
		// overtime is paid at time and a half
		row.LaborCost = model.RoundMoney(row.RegularHours*s.HourlyRate + row.OvertimeHours*s.HourlyRate*1.5)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalHours > rows[j].TotalHours })
	return rows, nil
}

func InventoryReportFor(db *gorm.DB, restaurantID uint) (*model.InventoryReport, error) {
	items, err := ListInventory(db, restaurantID, "")
	if err != nil {
		return nil, err
	}
	report := &model.InventoryReport{Items: make([]model.InventoryReportRow, 0, len(items))}
	for _, it := range items {
		row := model.InventoryReportRow{
			ID:           it.ID,
			Name:         it.Name,
			Category:     it.Category,
			CurrentStock: it.CurrentStock,
			Unit:         it.Unit,
			StockValue:   model.RoundMoney(it.CurrentStock * it.CostPerUnit),
			IsLow:        it.IsLow(),
		}
		report.TotalValue += row.StockValue
		if row.IsLow {
			report.LowStock++
		}
		report.Items = append(report.Items, row)
	}
	report.TotalValue = model.RoundMoney(report.TotalValue)
	return report, nil
}

type dayTotals struct {
	Revenue float64
	Orders  int64
}

func totalsBetween(db *gorm.DB, restaurantID uint, from, to time.Time) (dayTotals, error) {
	var out dayTotals
	err := db.Model(&model.Order{}).
		Select("COALESCE(SUM(final_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("restaurant_id = ? AND status <> ? AND created_at >= ? AND created_at < ?",
			restaurantID, constants.ORDER_CANCELLED, from, to).
		Scan(&out).Error
	return out, err
}

// Dashboard compares today with yesterday and counts what needs attention now.
func Dashboard(db *gorm.DB, restaurantID uint, now time.Time) (*model.DashboardStats, error) {
	today := utils.StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	t, err := totalsBetween(db, restaurantID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	y, err := totalsBetween(db, restaurantID, yesterday, today)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TodayRevenue:     model.RoundMoney(t.Revenue),
		YesterdayRevenue: model.RoundMoney(y.Revenue),
		RevenueGrowth:    model.RoundMoney(utils.CalculateGrowth(t.Revenue, y.Revenue)),
		TodayOrders:      t.Orders,
		YesterdayOrders:  y.Orders,
		OrderGrowth:      model.RoundMoney(utils.CalculateGrowth(float64(t.Orders), float64(y.Orders))),
	}

	orders := func() *gorm.DB { return db.Model(&model.Order{}).Where("restaurant_id = ?", restaurantID) }
	if err := orders().Where("status = ?", constants.ORDER_PENDING).Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	active := []string{constants.ORDER_CONFIRMED, constants.ORDER_PREPARING, constants.ORDER_READY, constants.ORDER_OUT_FOR_DELIVERY}
	if err := orders().Where("status IN ?", active).Count(&stats.ActiveOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Customer{}).Where("restaurant_id = ?", restaurantID).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	err = db.Model(&model.InventoryItem{}).
		Where("restaurant_id = ? AND current_stock <= reorder_point", restaurantID).
		Count(&stats.LowStockItems).Error
	if err != nil {
		return nil, err
	}
	if stats.StaffOnShift, err = CountOnShift(db, restaurantID); err != nil {
		return nil, err
	}
	if err := orders().Preload("Items").Order("created_at DESC, id DESC").Limit(5).Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
