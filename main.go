package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendancenotifier/config"
	"attendancenotifier/database"
	"attendancenotifier/excel"
	"attendancenotifier/logger"
	"attendancenotifier/mailer"
	"attendancenotifier/pipeline"
	"attendancenotifier/sheets"
	"attendancenotifier/telegram"
	"attendancenotifier/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Attendance run failed: %v", err)
	}
	fmt.Println("Attendance emails sent successfully.")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer zl.Sync()

	// Справочник сотрудников живёт только в рамках запуска
	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	svc, err := sheets.NewService(ctx, cfg.Sheet.CredentialsFile)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		ReferencePath: cfg.Reference,
		Reference:     excel.NewExcelProcessor(db, zl),
		Lookup:        db,
		Source:        sheets.NewSource(svc, cfg.Sheet.SpreadsheetID, cfg.Sheet.DataTab, zl),
		Dispatcher: mailer.NewDispatcher(mailer.SMTPDialer{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.From,
			Password: cfg.Mail.Password,
		}, cfg.Mail.From, zl),
		Now:    func() time.Time { return utils.NowIn(cfg.Location) },
		Logger: zl,
	}

	if cfg.Sheet.OutputTab != "" {
		runner.Output = sheets.NewWriter(svc, cfg.Sheet.SpreadsheetID, cfg.Sheet.OutputTab, zl)
	}
	if cfg.ReportDir != "" {
		runner.Reporter = excel.Reporter{Dir: cfg.ReportDir}
	}
	if cfg.Telegram.Enabled() {
		bot, err := telegram.NewBot(cfg.Telegram.Token)
		if err != nil {
			zl.Warn("telegram summary disabled", zap.Error(err))
		} else {
			runner.Notifier = telegram.NewNotifier(bot, cfg.Telegram.ChatID)
		}
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if !summary.Delivered() {
		for _, f := range summary.Failed {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.To, f.Err)
		}
		return fmt.Errorf("%d of %d attendance emails failed", len(summary.Failed), summary.Composed)
	}
	return nil
}
