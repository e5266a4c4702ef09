package helper

import (
	"errors"
	"sort"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func CreateMenuItem(db *gorm.DB, restaurantID uint, input model.CreateMenuItemInput) (*model.MenuItem, error) {
	item := model.MenuItem{
		RestaurantID:    restaurantID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Price:           model.RoundMoney(input.Price),
		Category:        strings.TrimSpace(input.Category),
		ImageURL:        input.ImageURL,
		IsAvailable:     true,
		PreparationTime: input.PreparationTime,
		Modifiers:       datatypes.JSONSlice[model.ModifierGroup](input.Modifiers),
		Ingredients:     datatypes.JSONSlice[model.Ingredient](input.Ingredients),
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if item.PreparationTime == 0 {
		item.PreparationTime = constants.DEFAULT_PREPARATION_MINUTES
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetMenuItem(db *gorm.DB, restaurantID, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func UpdateMenuItem(db *gorm.DB, restaurantID, id uint, input model.UpdateMenuItemInput) (*model.MenuItem, error) {
	item, err := GetMenuItem(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = model.RoundMoney(*input.Price)
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.PreparationTime != nil {
		item.PreparationTime = *input.PreparationTime
	}
	if input.Modifiers != nil {
		item.Modifiers = input.Modifiers
	}
	if input.Ingredients != nil {
		item.Ingredients = input.Ingredients
	}
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func DeleteMenuItem(db *gorm.DB, restaurantID, id uint) error {
	res := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func ListMenuItems(db *gorm.DB, restaurantID uint, filter model.MenuFilter) ([]model.MenuItem, error) {
	query := db.Where("restaurant_id = ?", restaurantID)
	if filter.Category != "" && !strings.EqualFold(filter.Category, "all") {
		query = query.Where("category = ?", filter.Category)
	}
	switch filter.Available {
	case "true":
		query = query.Where("is_available = ?", true)
	case "false":
		query = query.Where("is_available = ?", false)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	var items []model.MenuItem
	err := query.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

// MenuCategories returns "All" followed by the distinct categories, sorted.
func MenuCategories(db *gorm.DB, restaurantID uint) ([]string, error) {
	var categories []string
	err := db.Model(&model.MenuItem{}).
		Where("restaurant_id = ? AND category <> ''", restaurantID).
		Distinct().Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	categories = lo.Uniq(categories)
	sort.Strings(categories)
	return append([]string{"All"}, categories...), nil
}
