package helper

import (
	"errors"
	"fmt"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/logger"
	"restaurant_manager/metrics"
	"restaurant_manager/model"
	"restaurant_manager/realtime"
	"restaurant_manager/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notificationTransitions lists the statuses reachable from each status.
var notificationTransitions = map[string][]string{
	constants.NOTIFICATION_PENDING:   {constants.NOTIFICATION_SENT, constants.NOTIFICATION_FAILED},
	constants.NOTIFICATION_SENT:      {constants.NOTIFICATION_DELIVERED, constants.NOTIFICATION_READ, constants.NOTIFICATION_FAILED},
	constants.NOTIFICATION_DELIVERED: {constants.NOTIFICATION_READ, constants.NOTIFICATION_FAILED},
}

func CanTransitionNotification(from, to string) bool {
	for _, s := range notificationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionNotification moves n to status and stamps the matching timestamp.
// It does not persist.
func TransitionNotification(n *model.Notification, status string, now time.Time, reason string) error {
	if !CanTransitionNotification(n.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidNotificationTransition, n.Status, status)
	}
	n.Status = status
	switch status {
	case constants.NOTIFICATION_SENT:
		n.SentAt = &now
	case constants.NOTIFICATION_DELIVERED:
		n.DeliveredAt = &now
	case constants.NOTIFICATION_READ:
		n.ReadAt = &now
	case constants.NOTIFICATION_FAILED:
		n.ErrorMessage = reason
	}
	return nil
}

// CreateNotification stores a notification and pushes in-app ones to the dashboard.
// In-app only notifications are delivered by the push itself; e-mail ones wait for the dispatcher.
func CreateNotification(db *gorm.DB, restaurantID uint, input model.CreateNotificationInput, now time.Time) (*model.Notification, error) {
	n := model.Notification{
		RestaurantID:   restaurantID,
		RecipientID:    input.RecipientID,
		RecipientModel: input.RecipientModel,
		RecipientEmail: input.RecipientEmail,
		Type:           input.Type,
		Priority:       input.Priority,
		Title:          input.Title,
		Message:        input.Message,
		Data:           datatypes.JSONMap(input.Data),
		Channels:       model.NotificationChannels{InApp: true},
		Status:         constants.NOTIFICATION_PENDING,
		ExpiresAt:      now.AddDate(0, 0, constants.NOTIFICATION_TTL_DAYS),
	}
	if n.RecipientModel == "" {
		n.RecipientModel = "User"
	}
	if n.Type == "" {
		n.Type = "custom"
	}
	if n.Priority == "" {
		n.Priority = "medium"
	}
	if input.Channels != nil {
		n.Channels = *input.Channels
	}
	if input.ExpiresAt != nil {
		n.ExpiresAt = *input.ExpiresAt
	}
	if n.Channels.Email && n.RecipientEmail == "" && n.RecipientModel == "User" {
		var owner model.User
		if err := db.Select("email").First(&owner, n.RecipientID).Error; err == nil {
			n.RecipientEmail = owner.Email
		}
	}

	if err := db.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if n.Channels.InApp {
		realtime.Emit(restaurantID, constants.EVENT_NOTIFICATION_NEW, n)
		_ = TransitionNotification(&n, constants.NOTIFICATION_SENT, now, "")
		if !n.Channels.Email {
			_ = TransitionNotification(&n, constants.NOTIFICATION_DELIVERED, now, "")
		}
		if err := db.Save(&n).Error; err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func activeNotifications(db *gorm.DB, restaurantID uint, now time.Time) *gorm.DB {
	return db.Model(&model.Notification{}).Where("restaurant_id = ? AND expires_at > ?", restaurantID, now)
}

func ListNotifications(db *gorm.DB, restaurantID uint, filter model.NotificationFilter, now time.Time) ([]model.Notification, int64, int64, error) {
	query := activeNotifications(db, restaurantID, now)
	if filter.Unread == "true" {
		query = query.Where("status <> ?", constants.NOTIFICATION_READ)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total, unread int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	err := activeNotifications(db, restaurantID, now).
		Where("status <> ?", constants.NOTIFICATION_READ).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var rows []model.Notification
	err = utils.ApplyPagination(query.Order("created_at DESC, id DESC"), filter.Limit, filter.Page).Find(&rows).Error
	return rows, total, unread, err
}

func findNotification(db *gorm.DB, restaurantID, id uint) (*model.Notification, error) {
	var n model.Notification
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func MarkNotificationRead(db *gorm.DB, restaurantID, id uint, now time.Time) (*model.Notification, error) {
	n, err := findNotification(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if n.Status == constants.NOTIFICATION_READ {
		return n, nil
	}
	if err := TransitionNotification(n, constants.NOTIFICATION_READ, now, ""); err != nil {
		return nil, err
	}
	return n, db.Save(n).Error
}

// MarkAllNotificationsRead reads every sent or delivered notification of the restaurant.
func MarkAllNotificationsRead(db *gorm.DB, restaurantID uint, now time.Time) (int64, error) {
	res := db.Model(&model.Notification{}).
		Where("restaurant_id = ? AND status IN ?", restaurantID, []string{constants.NOTIFICATION_SENT, constants.NOTIFICATION_DELIVERED}).
		Updates(map[string]any{"status": constants.NOTIFICATION_READ, "read_at": now})
	return res.RowsAffected, res.Error
}

func DeleteNotification(db *gorm.DB, restaurantID, id uint) error {
	res := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&model.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// PurgeExpiredNotifications deletes rows whose expiry has passed.
func PurgeExpiredNotifications(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at < ?", now).Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

// DispatchEmailNotifications sends e-mail channel notifications that are not delivered yet.
// A failed send is retried on the next run until NOTIFICATION_MAX_RETRIES, then marked failed.
func DispatchEmailNotifications(db *gorm.DB, mailer utils.Mailer, now time.Time, batch int) (int, error) {
	log := logger.WithComponent("notification-dispatch")

	var pending []model.Notification
	err := db.Where("channel_email = ? AND status IN ? AND expires_at > ?",
		true, []string{constants.NOTIFICATION_PENDING, constants.NOTIFICATION_SENT}, now).
		Where("delivered_at IS NULL").
		Order("id").Limit(batch).Find(&pending).Error
	if err != nil {
		return 0, err
	}

	delivered := 0
	for i := range pending {
		n := &pending[i]
		if n.RecipientEmail == "" {
			_ = TransitionNotification(n, constants.NOTIFICATION_FAILED, now, "no recipient email")
			metrics.NotificationsDispatchedTotal.WithLabelValues("failed").Inc()
		} else if sendErr := sendNotificationEmail(mailer, n); sendErr != nil {
			n.RetryCount++
			if n.RetryCount >= constants.NOTIFICATION_MAX_RETRIES {
				_ = TransitionNotification(n, constants.NOTIFICATION_FAILED, now, sendErr.Error())
				metrics.NotificationsDispatchedTotal.WithLabelValues("failed").Inc()
			} else {
				n.ErrorMessage = sendErr.Error()
				metrics.NotificationsDispatchedTotal.WithLabelValues("retry").Inc()
			}
			log.Warn().Err(sendErr).Uint("notification", n.ID).Int("retry", n.RetryCount).Msg("email send failed")
		} else {
			if n.Status == constants.NOTIFICATION_PENDING {
				_ = TransitionNotification(n, constants.NOTIFICATION_SENT, now, "")
			}
			_ = TransitionNotification(n, constants.NOTIFICATION_DELIVERED, now, "")
			n.ErrorMessage = ""
			delivered++
			metrics.NotificationsDispatchedTotal.WithLabelValues("delivered").Inc()
		}
		if err := db.Save(n).Error; err != nil {
			return delivered, err
		}
	}
	return delivered, nil
}

func sendNotificationEmail(mailer utils.Mailer, n *model.Notification) error {
	body, err := utils.RenderNotificationEmail(utils.NotificationEmailData{Title: n.Title, Message: n.Message})
	if err != nil {
		return err
	}
	return mailer.Send(n.RecipientEmail, n.Title, body)
}
