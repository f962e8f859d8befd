package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/time/rate"

	planthandler "github.com/aliskhannn/plant-watering/internal/api/handlers/plant"
	reminderhandler "github.com/aliskhannn/plant-watering/internal/api/handlers/reminder"
	"github.com/aliskhannn/plant-watering/internal/api/router"
	"github.com/aliskhannn/plant-watering/internal/api/server"
	"github.com/aliskhannn/plant-watering/internal/config"
	remindermsg "github.com/aliskhannn/plant-watering/internal/rabbitmq/handlers/reminder"
	"github.com/aliskhannn/plant-watering/internal/rabbitmq/queue"
	"github.com/aliskhannn/plant-watering/internal/reminder"
	plantsvc "github.com/aliskhannn/plant-watering/internal/service/plant"
	remindersvc "github.com/aliskhannn/plant-watering/internal/service/reminder"
	"github.com/aliskhannn/plant-watering/internal/storage"
	"github.com/aliskhannn/plant-watering/internal/worker"
	"github.com/aliskhannn/plant-watering/pkg/email"
	"github.com/aliskhannn/plant-watering/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()

	if level, err := zerolog.ParseLevel(cfg.Logger.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		zlog.Logger.Warn().Err(err).Str("level", cfg.Logger.Level).Msg("unknown log level, keeping default")
	}

	st, err := storage.Open(ctx, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open storage")
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q := queue.NewReminderQueue(ch, cfg.RabbitMQ)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	senders := map[string]remindersvc.Sender{}

	if smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort); err == nil {
		senders["email"] = email.NewClient(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		)
	} else {
		zlog.Logger.Warn().Err(err).Msg("invalid smtp port, email reminders disabled")
	}

	if cfg.Telegram.Token != "" {
		tg, err := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIURL)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to create telegram client")
		}
		senders["telegram"] = tg
	}

	reminderService := remindersvc.NewService(st.Reminders, q, senders, rdb, remindersvc.Settings{
		Channel:   cfg.Reminders.Channel,
		To:        cfg.Recipient(),
		Retries:   cfg.Reminders.Retries,
		SweepSize: cfg.Reminders.SweepSize,
		Strategy:  cfg.Retry,
	})

	scheduler := reminder.NewScheduler(reminderService, reminder.WithText(cfg.Reminders.Title, cfg.Reminders.BodyFmt))
	if err := scheduler.Init(ctx); err != nil {
		// plants stay editable without reminders
		zlog.Logger.Error().Err(err).Msg("failed to initialize reminders")
	}

	plantService := plantsvc.NewService(st.Plants, scheduler, cfg.Plants.DefaultWaterEveryDays)

	var wg sync.WaitGroup

	sendRate := rate.Inf
	if cfg.Workers.RatePerSec > 0 {
		sendRate = rate.Limit(cfg.Workers.RatePerSec)
	}
	limiter := rate.NewLimiter(sendRate, 1)
	notifier := worker.NewNotifier(q, remindermsg.NewHandler(reminderService, limiter), reminderService)
	sweeper := worker.NewSweeper(reminderService, cfg.Reminders.SweepSpec)

	wg.Add(2)
	go func() {
		defer wg.Done()
		notifier.Run(ctx, cfg.Retry, cfg.Workers.Count)
	}()
	go func() {
		defer wg.Done()
		if err := sweeper.Run(ctx); err != nil {
			zlog.Logger.Error().Err(err).Msg("sweeper stopped")
		}
	}()

	r := router.New(
		planthandler.NewHandler(plantService, validator.New()),
		reminderhandler.NewHandler(reminderService, cfg),
	)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to notify systemd")
	}
	zlog.Logger.Info().Str("addr", cfg.Server.HTTPPort).Msg("plant care service started")

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	wg.Wait()

	if err := st.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close storage")
	}

	if err := rdb.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close redis")
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
