package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tgcatalog/internal/config"
	"tgcatalog/internal/logger"
	"tgcatalog/pkg/storage"
	"tgcatalog/pkg/telegram"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "tgcatalog",
		Short:        "Каталог подборок Telegram-каналов",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "путь к YAML-конфигурации")

	root.AddCommand(
		newServeCmd(&cfgPath),
		newSyncCategoriesCmd(&cfgPath),
		newCatalogCmd(&cfgPath),
		newLoginCmd(&cfgPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cobra.OnFinalize(stop)
	root.SetContext(ctx)
	return root
}

// loadApp читает конфигурацию и создаёт журнал процесса.
func loadApp(cfgPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openDB подключается к БД и применяет схему. Пустой DSN даёт nil без ошибки.
func openDB(ctx context.Context, cfg config.Database, log *zap.Logger) (*storage.DB, error) {
	if cfg.DSN == "" {
		log.Warn("database.dsn не задан, каталог работает на демонстрационных данных")
		return nil, nil
	}
	db, err := storage.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("миграция БД: %w", err)
	}
	return db, nil
}

// requireDB открывает БД для команд, которые без неё не работают.
func requireDB(ctx context.Context, cfg config.Database, log *zap.Logger) (*storage.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("команде нужна БД: задайте database.dsn или TGCATALOG_DATABASE_DSN")
	}
	return openDB(ctx, cfg, log)
}

func clientOptions(cfg *config.Config, db *storage.DB, log *zap.Logger) telegram.ClientOptions {
	opts := telegram.ClientOptions{
		APIID:       cfg.Telegram.APIID,
		APIHash:     cfg.Telegram.APIHash,
		SessionName: cfg.Telegram.SessionName,
		Proxy:       cfg.Telegram.ProxyModel(),
		Logger:      log,
	}
	if db != nil {
		opts.DB = db.Conn
	}
	return opts
}
