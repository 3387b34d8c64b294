package parser

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tgcatalog/internal/common"
)

// SchedulerConfig — параметры фонового парсинга.
type SchedulerConfig struct {
	Interval time.Duration
	PauseMin time.Duration
	PauseMax time.Duration
	Limit    int
}

// Scheduler периодически обновляет все каналы.
type Scheduler struct {
	svc *Service
	cfg SchedulerConfig
	log *zap.Logger
}

func NewScheduler(svc *Service, cfg SchedulerConfig, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	return &Scheduler{svc: svc, cfg: cfg, log: log}
}

// Run выполняет проход сразу и затем раз в Interval, пока не отменён ctx.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		start := time.Now()
		sum, err := s.svc.ParseAll(ctx, s.cfg.Limit, s.cfg.PauseMin, s.cfg.PauseMax)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			s.log.Error("фоновый парсинг прерван", zap.Error(err))
		} else {
			s.log.Info("фоновый парсинг завершён",
				zap.Int("total", sum.Total),
				zap.Int("parsed", sum.Parsed),
				zap.Int("failed", sum.Failed),
				zap.Duration("took", time.Since(start)),
			)
		}

		if err := common.Sleep(ctx, s.cfg.Interval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}
