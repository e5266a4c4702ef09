package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/handler"
	"restaurant_manager/helper"
	"restaurant_manager/jobs"
	"restaurant_manager/logger"
	"restaurant_manager/middleware"
	"restaurant_manager/realtime"
	"restaurant_manager/router"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restaurant-manager",
	Short: "Multi-tenant restaurant ordering backend",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, realtime socket and background jobs",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup()
		if err != nil {
			return err
		}
		if err := database.ConnectDB(settings); err != nil {
			return err
		}
		return database.Migrate(database.DB)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo owner, restaurant and menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup()
		if err != nil {
			return err
		}
		if err := database.ConnectDB(settings); err != nil {
			return err
		}
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
		return database.SeedData(database.DB)
	},
}

// setup loads settings and applies the process-wide ones.
func setup() (config.Settings, error) {
	settings := config.Load()
	logger.Init(logger.Config{Level: settings.LogLevel, JSONOutput: settings.LogJSON})
	if err := settings.Validate(); err != nil {
		return settings, err
	}

	if settings.JWTSecret != "" {
		helper.JwtSecret = []byte(settings.JWTSecret)
	} else {
		logger.Log.Warn().Msg("JWT_SECRET is not set, tokens are signed with a per-process secret")
	}
	helper.AccessTokenTTL = settings.AccessTokenTTL
	helper.Defaults = helper.PricingDefaults{TaxRate: settings.DefaultTaxRate, DeliveryFee: settings.DefaultDeliveryFee}
	helper.PublicAppURL = settings.PublicAppURL
	handler.ExposeErrors = settings.IsDevelopment()
	return settings, nil
}

func serve(cmd *cobra.Command, args []string) error {
	settings, err := setup()
	if err != nil {
		return err
	}
	log := logger.WithComponent("server")

	if err := database.ConnectDB(settings); err != nil {
		return err
	}
	if err := database.Migrate(database.DB); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeEvents, err := setupPublisher(ctx, settings)
	if err != nil {
		return err
	}
	defer closeEvents()

	smtp := utils.SMTPConfig{
		Host:     settings.SMTPHost,
		Port:     settings.SMTPPort,
		Username: settings.SMTPUser,
		Password: settings.SMTPPassword,
		From:     settings.SMTPFrom,
	}
	var mailer utils.Mailer
	if smtp.Enabled() {
		mailer = utils.NewGomailMailer(smtp)
	} else {
		log.Info().Msg("SMTP not configured, email notifications stay pending")
	}

	notificationJobs := jobs.NewNotificationJobs(database.DB, mailer)
	if err := notificationJobs.Start(); err != nil {
		return fmt.Errorf("start notification jobs: %w", err)
	}
	defer notificationJobs.Stop()

	if smtp.Enabled() {
		digest := jobs.NewDigestJob(database.DB, utils.NewDigestSender(smtp), time.Local)
		if err := digest.Start(); err != nil {
			return fmt.Errorf("start digest job: %w", err)
		}
		defer digest.Stop()
	}

	handler.CloudinarySettings = helper.CloudinaryConfig{
		CloudName: settings.CloudinaryCloudName,
		APIKey:    settings.CloudinaryAPIKey,
		APISecret: settings.CloudinaryAPISecret,
	}
	if handler.CloudinarySettings.Enabled() {
		uploader, err := helper.InitCloudinary(handler.CloudinarySettings)
		if err != nil {
			return err
		}
		handler.Uploader = uploader
	}
	handler.Deployer = helper.NewDeployer(database.DB, helper.HostedSiteBuilder{})

	app := newApp(settings)
	router.SetupRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + settings.HTTPPort)
	}()
	log.Info().Str("port", settings.HTTPPort).Msg("listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		return err
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

func newApp(settings config.Settings) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.TrimSpace(settings.CORSOrigins),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, Idempotency-Key",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))
	app.Use(middleware.Metrics())
	return app
}

// setupPublisher picks where realtime events go. With Redis every instance
// relays the shared channel into its own hub; without it events stay in-process.
func setupPublisher(ctx context.Context, settings config.Settings) (func(), error) {
	log := logger.WithComponent("realtime")
	var publishers realtime.MultiPublisher
	var closers []func()

	if settings.RedisAddr != "" {
		client, err := realtime.NewRedisClient(settings.RedisAddr, settings.RedisPassword)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		publishers = append(publishers, realtime.RedisPublisher{Client: client})

		bridge := &realtime.Bridge{Client: client, Hub: handler.Hub}
		go func() {
			if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("redis bridge stopped")
			}
		}()
	} else {
		publishers = append(publishers, realtime.LocalPublisher{Hub: handler.Hub})
	}

	if settings.KafkaBroker != "" {
		writer := realtime.NewKafkaWriter(settings.KafkaBroker, settings.OrderEventsTopic)
		closers = append(closers, func() { _ = writer.Close() })
		publishers = append(publishers, realtime.KafkaPublisher{Writer: writer})
		log.Info().Str("topic", settings.OrderEventsTopic).Msg("order events mirrored to kafka")
	}

	realtime.SetPublisher(publishers)
	return func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
