package parser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tgcatalog/internal/common"
	"tgcatalog/models"
	"tgcatalog/pkg/storage"
	"tgcatalog/pkg/telegram"
)

// ChannelParser читает данные канала из Telegram.
type ChannelParser interface {
	ParseChannel(ctx context.Context, identifier string, limit int) (*models.TelegramChannel, error)
}

// Session открывает соединение с Telegram и вызывает fn с готовым парсером.
type Session func(ctx context.Context, fn func(ctx context.Context, p ChannelParser) error) error

// Store — операции хранилища, нужные парсеру.
type Store interface {
	UpsertChannel(ctx context.Context, ch models.TelegramChannel) (int64, bool, error)
	SaveChannelStats(ctx context.Context, channelID, participants int64, now time.Time) (*models.ChannelStats, error)
	GetChannelByUsername(ctx context.Context, username string) (*models.TelegramChannel, error)
	ListChannelUsernames(ctx context.Context) ([]string, error)
}

// Meta — поля канала, которые задаёт человек, а не Telegram.
type Meta struct {
	Language string
	Country  string
	Category string
}

// Result — итог парсинга одного канала.
type Result struct {
	Channel models.TelegramChannel `json:"channel"`
	Stats   models.ChannelStats    `json:"stats"`
	Created bool                   `json:"created"`
}

// Summary — итог полного прохода по каналам.
type Summary struct {
	Total  int
	Parsed int
	Failed int
}

// Service парсит каналы и сохраняет их вместе со снимком подписчиков.
type Service struct {
	store   Store
	session Session
	locks   *telegram.ChannelLock
	log     *zap.Logger
	now     func() time.Time
}

func NewService(store Store, session Session, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		session: session,
		locks:   telegram.NewChannelLock(),
		log:     log,
		now:     time.Now,
	}
}

// ParseAndSave парсит один канал и сохраняет его с заданными meta.
// При meta == nil язык, страна и категория берутся из уже сохранённого канала.
func (s *Service) ParseAndSave(ctx context.Context, identifier string, limit int, meta *Meta) (*Result, error) {
	var res *Result
	err := s.session(ctx, func(ctx context.Context, p ChannelParser) error {
		var err error
		res, err = s.parseAndSave(ctx, p, identifier, limit, meta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseAll обновляет все каналы из БД в одной сессии с паузой между каналами.
// Language, country и category берутся из уже сохранённой строки.
func (s *Service) ParseAll(ctx context.Context, limit int, pauseMin, pauseMax time.Duration) (Summary, error) {
	usernames, err := s.store.ListChannelUsernames(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Total: len(usernames)}
	if len(usernames) == 0 {
		s.log.Warn("нет каналов для парсинга")
		return sum, nil
	}

	err = s.session(ctx, func(ctx context.Context, p ChannelParser) error {
		for i, username := range usernames {
			if i > 0 {
				if err := common.WaitWithCancellation(ctx, pauseMin, pauseMax); err != nil {
					return err
				}
			}
			res, err := s.parseAndSave(ctx, p, username, limit, nil)
			if err != nil && (errors.Is(err, telegram.ErrUnauthorized) || ctx.Err() != nil) {
				return err
			}
			if err != nil {
				sum.Failed++
				s.log.Error("не удалось обновить канал",
					zap.String("channel", username),
					zap.Bool("retryable", telegram.IsRetryable(err)),
					zap.Error(err),
				)
				continue
			}
			sum.Parsed++
			s.log.Info("канал обновлён",
				zap.String("channel", res.Channel.Username),
				zap.Int64("participants", res.Stats.ParticipantsCount),
				zap.Int64("growth", res.Stats.DailyGrowth),
			)
		}
		return nil
	})
	return sum, err
}

// parseAndSave при meta == nil сохраняет language, country и category существующей строки.
func (s *Service) parseAndSave(ctx context.Context, p ChannelParser, identifier string, limit int, meta *Meta) (*Result, error) {
	username, err := telegram.ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}
	unlock, err := s.locks.TryLock(username)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if meta == nil {
		meta = &Meta{}
		existing, err := s.store.GetChannelByUsername(ctx, username)
		switch {
		case err == nil:
			*meta = Meta{Language: existing.Language, Country: existing.Country, Category: existing.Category}
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}
	}

	s.log.Info("начинаем парсинг канала", zap.String("channel", username), zap.Int("limit", limit))
	ch, err := p.ParseChannel(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("парсинг %s: %w", username, err)
	}
	ch.Language, ch.Country, ch.Category = meta.Language, meta.Country, meta.Category

	id, created, err := s.store.UpsertChannel(ctx, *ch)
	if err != nil {
		return nil, err
	}
	ch.ID = id

	now := s.now()
	stats, err := s.store.SaveChannelStats(ctx, id, ch.ParticipantsCount, now)
	if err != nil {
		return nil, fmt.Errorf("статистика %s: %w", username, err)
	}
	ch.ParsedAt = &now

	return &Result{Channel: *ch, Stats: *stats, Created: created}, nil
}
