package helper

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"restaurant_manager/model"
	"restaurant_manager/utils"

	"gorm.io/gorm"
)

// PublicAppURL is the storefront origin used in QR links and published sites.
var PublicAppURL = "http://localhost:5173"

func StorefrontURL(slug string) string {
	return strings.TrimRight(PublicAppURL, "/") + "/r/" + slug
}

func TableOrderingURL(slug, table string) string {
	return StorefrontURL(slug) + "?table=" + url.QueryEscape(table)
}

func CreateQRCode(db *gorm.DB, restaurant *model.Restaurant, input model.QRCodeInput) (*model.TableQRCode, error) {
	table := strings.TrimSpace(input.TableNumber)
	var count int64
	err := db.Model(&model.TableQRCode{}).
		Where("restaurant_id = ? AND table_number = ?", restaurant.ID, table).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTableExists
	}

	qr := model.TableQRCode{
		RestaurantID:    restaurant.ID,
		TableNumber:     table,
		TableName:       input.TableName,
		OrderingURL:     TableOrderingURL(restaurant.Slug, table),
		IsActive:        true,
		SeatingCapacity: input.SeatingCapacity,
		Location:        input.Location,
		Section:         input.Section,
	}
	if qr.SeatingCapacity == 0 {
		qr.SeatingCapacity = 4
	}
	if qr.Location == "" {
		qr.Location = "indoor"
	}
	if err := db.Create(&qr).Error; err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}
	return &qr, nil
}

func GetQRCode(db *gorm.DB, restaurantID, id uint) (*model.TableQRCode, error) {
	var qr model.TableQRCode
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&qr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRCodeNotFound
		}
		return nil, err
	}
	return &qr, nil
}

func ListQRCodes(db *gorm.DB, restaurantID uint) ([]model.TableQRCode, error) {
	var codes []model.TableQRCode
	err := db.Where("restaurant_id = ?", restaurantID).Order("table_number ASC").Find(&codes).Error
	return codes, err
}

func UpdateQRCode(db *gorm.DB, restaurantID, id uint, input model.UpdateQRCodeInput) (*model.TableQRCode, error) {
	qr, err := GetQRCode(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if input.TableName != nil {
		qr.TableName = *input.TableName
	}
	if input.SeatingCapacity != nil {
		qr.SeatingCapacity = *input.SeatingCapacity
	}
	if input.Location != nil {
		qr.Location = *input.Location
	}
	if input.Section != nil {
		qr.Section = *input.Section
	}
	if input.IsActive != nil {
		qr.IsActive = *input.IsActive
	}
	if err := db.Save(qr).Error; err != nil {
		return nil, err
	}
	return qr, nil
}

func DeleteQRCode(db *gorm.DB, restaurantID, id uint) error {
	res := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&model.TableQRCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQRCodeNotFound
	}
	return nil
}

// QRCodePNG renders the table's ordering URL.
func QRCodePNG(qr *model.TableQRCode, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return utils.GenerateQRCode(qr.OrderingURL, size)
}

// RecordScan counts a public scan of an active table code and returns it.
func RecordScan(db *gorm.DB, restaurantID uint, table string, now time.Time) (*model.TableQRCode, error) {
	res := db.Model(&model.TableQRCode{}).
		Where("restaurant_id = ? AND table_number = ? AND is_active = ?", restaurantID, table, true).
		Updates(map[string]any{
			"total_scans":    gorm.Expr("total_scans + 1"),
			"last_scan_date": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrQRCodeNotFound
	}
	var qr model.TableQRCode
	err := db.Where("restaurant_id = ? AND table_number = ?", restaurantID, table).First(&qr).Error
	return &qr, err
}
