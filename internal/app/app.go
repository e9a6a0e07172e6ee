package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"projectvote/internal/config"
	"projectvote/internal/handlers"
	"projectvote/internal/models"
	"projectvote/internal/notifier"
	"projectvote/pkg/db/redis"
)

type App struct {
	cfg  *config.Config
	psql *gorm.DB
}

func NewApp(cfg *config.Config, psql *gorm.DB) *App {
	return &App{cfg, psql}
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redis.InitRedis(ctx, a.cfg.Redis); err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		return err
	}

	smtp := notifier.NewSMTPMailer(a.cfg.Mail)
	notifier.InitNotifier(
		notifier.NewMailerFromDriver(a.cfg.Mail.Driver, smtp),
		a.cfg.FrontendURL,
		a.cfg.SendRejectionEmail,
	)

	taskChan := make(chan *models.ReminderTask)
	if redis.Client() != nil {
		go notifier.CheckReminders(taskChan)
	}

	server := &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: handlers.NewRouter(a.cfg),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case task := <-taskChan:
			notifier.HandleReminder(task)
		case err := <-serverErr:
			return err
		case sig := <-quit:
			log.Infof("received signal %s, shutting down", sig)
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		}
	}
}
