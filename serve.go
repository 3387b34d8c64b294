package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tgcatalog/internal/parser"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API и фоновый парсер",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *cfgPath)
		},
	}
}

func runServe(ctx context.Context, cfgPath string) error {
	cfg, log, err := loadApp(cfgPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var svc *parser.Service
	switch {
	case !cfg.Telegram.Configured():
		log.Info("telegram.api_id не задан, парсер выключен")
	case db == nil:
		log.Warn("парсеру нужна БД, парсер выключен")
	default:
		plog := log.Named("parser")
		svc = parser.NewService(db, parser.TelegramSession(clientOptions(cfg, db, plog), plog), plog)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           setupRouter(routerDeps{DB: db, Parser: svc, Token: cfg.Auth.Token, Log: log}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("сервер запущен", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("остановка сервера")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Parser.Enabled && svc != nil {
		sched := parser.NewScheduler(svc, parser.SchedulerConfig{
			Interval: cfg.Parser.Interval,
			PauseMin: cfg.Parser.PauseMin,
			PauseMax: cfg.Parser.PauseMax,
			Limit:    cfg.Parser.Limit,
		}, log.Named("scheduler"))
		g.Go(func() error { return sched.Run(gctx) })
	}
	return g.Wait()
}
