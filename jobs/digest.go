package jobs

import (
	"fmt"
	"time"

	"restaurant_manager/helper"
	"restaurant_manager/logger"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// DigestJob e-mails every owner the day's sales with a CSV attachment.
type DigestJob struct {
	DB       *gorm.DB
	Sender   utils.DigestSender
	Location *time.Location
	Now      func() time.Time

	scheduler gocron.Scheduler
}

func NewDigestJob(db *gorm.DB, sender utils.DigestSender, loc *time.Location) *DigestJob {
	if loc == nil {
		loc = time.Local
	}
	return &DigestJob{DB: db, Sender: sender, Location: loc, Now: time.Now}
}

func (j *DigestJob) Start() error {
	s, err := gocron.NewScheduler(gocron.WithLocation(j.Location))
	if err != nil {
		return err
	}
	j.scheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(23, 55, 0),
			),
		),
		gocron.NewTask(j.Run),
	)
	if err != nil {
		return err
	}

	s.Start()
	logger.WithComponent("jobs").Info().Msg("daily digest scheduled at 23:55")
	return nil
}

func (j *DigestJob) Stop() {
	if j.scheduler == nil {
		return
	}
	if err := j.scheduler.Shutdown(); err != nil {
		logger.WithComponent("jobs").Warn().Err(err).Msg("digest scheduler shutdown")
	}
}

// Run sends one digest per active restaurant whose owner has an e-mail.
func (j *DigestJob) Run() {
	log := logger.WithComponent("digest")
	now := j.Now().In(j.Location)
	from, to := utils.StartOfDay(now), utils.EndOfDay(now)

	var restaurants []model.Restaurant
	if err := j.DB.Where("is_active = ?", true).Find(&restaurants).Error; err != nil {
		log.Error().Err(err).Msg("load restaurants")
		return
	}

	sent := 0
	for _, r := range restaurants {
		if err := j.sendOne(&r, from, to); err != nil {
			log.Warn().Err(err).Uint("restaurant", r.ID).Msg("digest not sent")
			continue
		}
		sent++
	}
	log.Info().Int("sent", sent).Msg("daily digest finished")
}

func (j *DigestJob) sendOne(r *model.Restaurant, from, to time.Time) error {
	var owner model.User
	if err := j.DB.First(&owner, r.OwnerID).Error; err != nil {
		return err
	}
	if owner.Email == "" {
		return fmt.Errorf("owner %d has no email", owner.ID)
	}

	report, err := helper.SalesReport(j.DB, r.ID, from, to, "hour")
	if err != nil {
		return err
	}
	csvData, err := helper.SalesCSV(report)
	if err != nil {
		return err
	}

	day := from.Format(utils.DateLayout)
	text := fmt.Sprintf("%s sales for %s\n\nOrders: %d\nRevenue: %.2f\nAverage order: %.2f\nCancelled: %d\n",
		r.Name, day, report.Summary.TotalOrders, report.Summary.TotalRevenue,
		report.Summary.AverageOrder, report.Summary.CancelledOrders)

	return j.Sender.SendDigest(owner.Email, fmt.Sprintf("%s daily sales %s", r.Name, day), text, utils.Attachment{
		Filename:    "sales-" + day + ".csv",
		ContentType: "text/csv",
		Content:     csvData,
	})
}
