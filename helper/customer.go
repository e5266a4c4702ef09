package helper

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/model"
	"restaurant_manager/utils"

	"gorm.io/gorm"
)

var customerSorts = map[string]string{
	"spent":     "total_spent DESC",
	"orders":    "total_orders DESC",
	"points":    "loyalty_points DESC",
	"recent":    "last_order_date DESC",
	"name":      "name ASC",
	"createdAt": "created_at DESC",
}

func ListCustomers(db *gorm.DB, restaurantID uint, filter model.CustomerFilter) ([]model.Customer, int64, error) {
	query := db.Model(&model.Customer{}).Where("restaurant_id = ?", restaurantID)
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := customerSorts[filter.SortBy]
	if !ok {
		order = customerSorts["spent"]
	}
	var customers []model.Customer
	err := utils.ApplyPagination(query.Order(order).Order("id ASC"), filter.Limit, filter.Page).Find(&customers).Error
	return customers, total, err
}

func GetCustomer(db *gorm.DB, restaurantID, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func GetCustomerAnalytics(db *gorm.DB, restaurantID uint, now time.Time) (*model.CustomerAnalytics, error) {
	var out model.CustomerAnalytics
	base := func() *gorm.DB { return db.Model(&model.Customer{}).Where("restaurant_id = ?", restaurantID) }

	if err := base().Count(&out.TotalCustomers).Error; err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := base().Where("created_at >= ?", monthStart).Count(&out.NewThisMonth).Error; err != nil {
		return nil, err
	}

	var agg struct {
		AvgSpent  float64
		AvgOrders float64
	}
	err := base().Select("COALESCE(AVG(total_spent), 0) AS avg_spent, COALESCE(AVG(total_orders), 0) AS avg_orders").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	out.AverageSpent = model.RoundMoney(agg.AvgSpent)
	out.AverageOrderCount = model.RoundMoney(agg.AvgOrders)

	if err := base().Order("total_spent DESC").Limit(5).Find(&out.TopCustomers).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
