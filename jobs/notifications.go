package jobs

import (
	"time"

	"restaurant_manager/helper"
	"restaurant_manager/logger"
	"restaurant_manager/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	DispatchSpec = "@every 30s"
	PurgeSpec    = "*/10 * * * *"
	dispatchSize = 50
)

// NotificationJobs dispatches e-mail notifications and purges expired ones.
type NotificationJobs struct {
	DB     *gorm.DB
	Mailer utils.Mailer
	Now    func() time.Time

	scheduler *cron.Cron
}

func NewNotificationJobs(db *gorm.DB, mailer utils.Mailer) *NotificationJobs {
	return &NotificationJobs{DB: db, Mailer: mailer, Now: time.Now}
}

func (j *NotificationJobs) Start() error {
	j.scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if j.Mailer != nil {
		if _, err := j.scheduler.AddFunc(DispatchSpec, j.Dispatch); err != nil {
			return err
		}
	}
	if _, err := j.scheduler.AddFunc(PurgeSpec, j.Purge); err != nil {
		return err
	}

	j.scheduler.Start()
	logger.WithComponent("jobs").Info().Msg("notification scheduler started")
	return nil
}

func (j *NotificationJobs) Stop() {
	if j.scheduler == nil {
		return
	}
	ctx := j.scheduler.Stop()
	<-ctx.Done()
	logger.WithComponent("jobs").Info().Msg("notification scheduler stopped")
}

func (j *NotificationJobs) Dispatch() {
	log := logger.WithComponent("notification-dispatch")
	n, err := helper.DispatchEmailNotifications(j.DB, j.Mailer, j.Now(), dispatchSize)
	if err != nil {
		log.Error().Err(err).Msg("dispatch failed")
		return
	}
	if n > 0 {
		log.Info().Int("delivered", n).Msg("notifications delivered")
	}
}

func (j *NotificationJobs) Purge() {
	log := logger.WithComponent("notification-purge")
	n, err := helper.PurgeExpiredNotifications(j.DB, j.Now())
	if err != nil {
		log.Error().Err(err).Msg("purge failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("expired notifications purged")
	}
}
