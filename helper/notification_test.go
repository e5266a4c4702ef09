package helper

import (
	"errors"
	"testing"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestNotificationTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{constants.NOTIFICATION_PENDING, constants.NOTIFICATION_SENT, true},
		{constants.NOTIFICATION_PENDING, constants.NOTIFICATION_READ, false},
		{constants.NOTIFICATION_SENT, constants.NOTIFICATION_READ, true},
		{constants.NOTIFICATION_DELIVERED, constants.NOTIFICATION_FAILED, true},
		{constants.NOTIFICATION_READ, constants.NOTIFICATION_SENT, false},
		{constants.NOTIFICATION_FAILED, constants.NOTIFICATION_PENDING, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransitionNotification(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	n := &model.Notification{Status: constants.NOTIFICATION_READ}
	err := TransitionNotification(n, constants.NOTIFICATION_SENT, testNow, "")
	assert.ErrorIs(t, err, ErrInvalidNotificationTransition)
	assert.Equal(t, constants.NOTIFICATION_READ, n.Status)
}

func TestInAppNotificationIsDeliveredOnCreate(t *testing.T) {
	f := newFixture(t)

	n, err := CreateNotification(f.db, f.restaurant.ID, model.CreateNotificationInput{
		RecipientID: f.owner.ID,
		Title:       "New order",
		Message:     "Table 4 ordered",
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.NOTIFICATION_DELIVERED, n.Status)
	assert.Equal(t, "custom", n.Type)
	assert.Equal(t, "medium", n.Priority)
	require.NotNil(t, n.DeliveredAt)
	assert.Equal(t, testNow.AddDate(0, 0, constants.NOTIFICATION_TTL_DAYS), n.ExpiresAt)

	read, err := MarkNotificationRead(f.db, f.restaurant.ID, n.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.NOTIFICATION_READ, read.Status)

	other := f.otherRestaurant(t)
	_, err = MarkNotificationRead(f.db, other.ID, n.ID, testNow)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestEmailNotificationDispatch(t *testing.T) {
	f := newFixture(t)
	n, err := CreateNotification(f.db, f.restaurant.ID, model.CreateNotificationInput{
		RecipientID: f.owner.ID,
		Title:       "Low stock",
		Message:     "Dough is running out",
		Channels:    &model.NotificationChannels{InApp: true, Email: true},
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.NOTIFICATION_SENT, n.Status)
	assert.Equal(t, "owner@example.com", n.RecipientEmail)

	mailer := &fakeMailer{}
	delivered, err := DispatchEmailNotifications(f.db, mailer, testNow, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, []string{"owner@example.com"}, mailer.sent)

	n, err = findNotification(f.db, f.restaurant.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.NOTIFICATION_DELIVERED, n.Status)

	delivered, err = DispatchEmailNotifications(f.db, mailer, testNow, 10)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Len(t, mailer.sent, 1)
}

func TestEmailNotificationFailsAfterRetries(t *testing.T) {
	f := newFixture(t)
	n, err := CreateNotification(f.db, f.restaurant.ID, model.CreateNotificationInput{
		RecipientEmail: "manager@example.com",
		RecipientModel: "Staff",
		Title:          "Shift swap",
		Message:        "Please confirm",
		Channels:       &model.NotificationChannels{Email: true},
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, constants.NOTIFICATION_PENDING, n.Status)

	mailer := &fakeMailer{err: errors.New("smtp unavailable")}
	for i := 1; i <= constants.NOTIFICATION_MAX_RETRIES; i++ {
		_, err := DispatchEmailNotifications(f.db, mailer, testNow, 10)
		require.NoError(t, err)
		n, err = findNotification(f.db, f.restaurant.ID, n.ID)
		require.NoError(t, err)
		assert.Equal(t, i, n.RetryCount)
	}
	assert.Equal(t, constants.NOTIFICATION_FAILED, n.Status)
	assert.Equal(t, "smtp unavailable", n.ErrorMessage)
}

func TestNotificationListingAndPurge(t *testing.T) {
	f := newFixture(t)
	input := model.CreateNotificationInput{RecipientID: f.owner.ID, Title: "Hello", Message: "World"}
	for i := 0; i < 2; i++ {
		_, err := CreateNotification(f.db, f.restaurant.ID, input, testNow)
		require.NoError(t, err)
	}
	expiring := testNow.Add(time.Hour)
	input.ExpiresAt = &expiring
	_, err := CreateNotification(f.db, f.restaurant.ID, input, testNow)
	require.NoError(t, err)

	rows, total, unread, err := ListNotifications(f.db, f.restaurant.ID, model.NotificationFilter{}, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 3, unread)
	assert.Len(t, rows, 3)

	updated, err := MarkAllNotificationsRead(f.db, f.restaurant.ID, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)

	_, _, unread, err = ListNotifications(f.db, f.restaurant.ID, model.NotificationFilter{}, testNow)
	require.NoError(t, err)
	assert.Zero(t, unread)

	purged, err := PurgeExpiredNotifications(f.db, testNow.Add(2*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, total, _, err = ListNotifications(f.db, f.restaurant.ID, model.NotificationFilter{}, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
