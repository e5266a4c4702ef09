package helper

import (
	"fmt"

	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueRestaurantSlug derives a slug from name, appending -1, -2... while it is taken.
// excludeID lets a restaurant keep its own slug on update.
func GenerateUniqueRestaurantSlug(tx *gorm.DB, name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurant"
	}
	result := base
	i := 1

	for {
		var count int64
		q := tx.Model(&model.Restaurant{}).Where("slug = ?", result)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}
}
