package helper

import (
	"errors"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/realtime"

	"gorm.io/gorm"
)

func CreateInventoryItem(db *gorm.DB, restaurantID uint, input model.InventoryInput) (*model.InventoryItem, error) {
	item := model.InventoryItem{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		CurrentStock: input.CurrentStock,
		Unit:         input.Unit,
		ReorderPoint: input.ReorderPoint,
		CostPerUnit:  input.CostPerUnit,
		Supplier:     input.Supplier,
		AutoDeduct:   true,
	}
	if input.AutoDeduct != nil {
		item.AutoDeduct = *input.AutoDeduct
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInventoryItem(db *gorm.DB, restaurantID, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return &item, nil
}

func ListInventory(db *gorm.DB, restaurantID uint, category string) ([]model.InventoryItem, error) {
	query := db.Where("restaurant_id = ?", restaurantID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var items []model.InventoryItem
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// LowStockItems returns items at or below their reorder point.
func LowStockItems(db *gorm.DB, restaurantID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := db.Where("restaurant_id = ? AND current_stock <= reorder_point", restaurantID).
		Order("current_stock ASC").Find(&items).Error
	return items, err
}

func UpdateInventoryItem(db *gorm.DB, restaurantID, id uint, input model.UpdateInventoryInput) (*model.InventoryItem, error) {
	item, err := GetInventoryItem(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	wasLow := item.IsLow()
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.CurrentStock != nil {
		item.CurrentStock = *input.CurrentStock
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.ReorderPoint != nil {
		item.ReorderPoint = *input.ReorderPoint
	}
	if input.CostPerUnit != nil {
		item.CostPerUnit = *input.CostPerUnit
	}
	if input.Supplier != nil {
		item.Supplier = *input.Supplier
	}
	if input.AutoDeduct != nil {
		item.AutoDeduct = *input.AutoDeduct
	}
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	if !wasLow && item.IsLow() {
		realtime.Emit(restaurantID, constants.EVENT_INVENTORY_LOW, inventoryEvent(*item))
	}
	return item, nil
}

func RestockInventoryItem(db *gorm.DB, restaurantID, id uint, input model.RestockInput, now time.Time) (*model.InventoryItem, error) {
	item, err := GetInventoryItem(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"current_stock":  gorm.Expr("current_stock + ?", input.Quantity),
		"last_restocked": now,
	}
	if input.CostPerUnit != nil {
		updates["cost_per_unit"] = *input.CostPerUnit
	}
	if err := db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetInventoryItem(db, restaurantID, id)
}

func DeleteInventoryItem(db *gorm.DB, restaurantID, id uint) error {
	res := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&model.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInventoryNotFound
	}
	return nil
}
