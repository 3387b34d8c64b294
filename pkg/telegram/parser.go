package telegram

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tgcatalog/internal/common"
	"tgcatalog/models"
)

const (
	// DefaultLimit — сколько последних постов сохраняется по умолчанию.
	DefaultLimit = 10
	// historyFactor — во сколько раз больше постов читается для средних просмотров.
	historyFactor = 3

	noDescription = "Нет описания"
	noPinned      = "Нет закрепленного сообщения"
)

// Parser читает публичные данные канала через MTProto.
type Parser struct {
	api          *tg.Client
	log          *zap.Logger
	limiter      *rate.Limiter
	floodRetries int
	floodJitter  [2]time.Duration
}

// NewParser создаёт парсер поверх клиента API. Не больше одного запроса в секунду.
func NewParser(api *tg.Client, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		api:          api,
		log:          log,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
		floodRetries: 3,
		floodJitter:  [2]time.Duration{time.Second, 2 * time.Second},
	}
}

// ParseChannel собирает данные канала: название, описание, подписчиков,
// закреп, limit последних постов и средние просмотры по limit*3 постам.
// Язык, страна и категория задаются вызывающим.
func (p *Parser) ParseChannel(ctx context.Context, identifier string, limit int) (*models.TelegramChannel, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	username, err := ExtractUsername(identifier)
	if err != nil {
		return nil, err
	}

	var resolved *tg.ContactsResolvedPeer
	err = p.call(ctx, "contacts.resolveUsername", func(ctx context.Context) error {
		var err error
		resolved, err = p.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
		return err
	})
	if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
		return nil, fmt.Errorf("%s: %w", username, ErrChannelNotFound)
	}
	if err != nil {
		return nil, err
	}
	ch, err := FindChannel(resolved.GetChats())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", username, err)
	}

	out := &models.TelegramChannel{
		ChannelID: ch.ID,
		Title:     ch.Title,
		Username:  usernameOrDash(ch.Username),
		Verified:  ch.Verified,
	}
	if ch.Date != 0 {
		created := time.Unix(int64(ch.Date), 0).UTC()
		out.CreationDate = &created
	}

	var history tg.MessagesMessagesClass
	err = p.call(ctx, "messages.getHistory", func(ctx context.Context) error {
		var err error
		history, err = p.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:  ch.AsInputPeer(),
			Limit: limit * historyFactor,
		})
		return err
	})
	if tgerr.Is(err, "CHANNEL_PRIVATE", "CHANNEL_INVALID") {
		return nil, fmt.Errorf("%s: %w", username, ErrChannelPrivate)
	}
	if err != nil {
		return nil, err
	}
	out.LastMessages, out.AverageViews = SummarizePosts(channelMessages(history), limit)

	out.Description = noDescription
	out.PinnedMessages = PinnedMessages(nil)

	var full *tg.MessagesChatFull
	err = p.call(ctx, "channels.getFullChannel", func(ctx context.Context) error {
		var err error
		full, err = p.api.ChannelsGetFullChannel(ctx, ch.AsInput())
		return err
	})
	if rpcErr, ok := tgerr.As(err); ok && rpcErr.Code == 403 {
		p.log.Warn("нет доступа к полной информации канала", zap.String("channel", username), zap.Error(err))
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	cf, ok := full.FullChat.(*tg.ChannelFull)
	if !ok {
		return nil, fmt.Errorf("неожиданный тип полной информации: %T", full.FullChat)
	}
	if n, ok := cf.GetParticipantsCount(); ok {
		out.ParticipantsCount = int64(n)
	}
	if cf.About != "" {
		out.Description = cf.About
	}

	if pinnedID, ok := cf.GetPinnedMsgID(); ok && pinnedID != 0 {
		pinned, err := p.pinnedMessage(ctx, ch, pinnedID)
		if err != nil {
			return nil, err
		}
		out.PinnedMessages = PinnedMessages(pinned)
	}

	p.log.Debug("канал разобран",
		zap.String("channel", username),
		zap.Int64("participants", out.ParticipantsCount),
		zap.Int64("average_views", out.AverageViews),
	)
	return out, nil
}

func (p *Parser) pinnedMessage(ctx context.Context, ch *tg.Channel, id int) (*tg.Message, error) {
	var res tg.MessagesMessagesClass
	err := p.call(ctx, "channels.getMessages", func(ctx context.Context) error {
		var err error
		res, err = p.api.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
			Channel: ch.AsInput(),
			ID:      []tg.InputMessageClass{&tg.InputMessageID{ID: id}},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	msgs := channelMessages(res)
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs[0], nil
}

// call выполняет запрос с ограничением частоты и повторяет его после FLOOD_WAIT.
func (p *Parser) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	for attempt := 0; ; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		err := fn(ctx)
		wait, ok := tgerr.AsFloodWait(err)
		if !ok {
			return err
		}
		if attempt >= p.floodRetries {
			return fmt.Errorf("%s: %w", method, err)
		}
		wait += common.RandomDelay(p.floodJitter[0], p.floodJitter[1])
		p.log.Warn("сработал антифлуд, ждём",
			zap.String("method", method),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
		)
		if err := common.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// FindChannel возвращает первый канал из списка чатов: вещательный или супергруппу.
// Обычные чаты каналом не считаются.
func FindChannel(chats []tg.ChatClass) (*tg.Channel, error) {
	for _, peer := range chats {
		if ch, ok := peer.(*tg.Channel); ok {
			return ch, nil
		}
	}
	return nil, ErrChannelNotFound
}

// SummarizePosts возвращает первые limit постов и средние просмотры
// по всем постам, у которых просмотры есть. Без просмотров среднее равно 0.
func SummarizePosts(msgs []*tg.Message, limit int) ([]models.ChannelPost, int64) {
	last := make([]models.ChannelPost, 0, min(limit, len(msgs)))
	var total, counted int64
	for i, m := range msgs {
		views, ok := m.GetViews()
		if i < limit {
			last = append(last, models.ChannelPost{PostID: m.ID, Text: m.Message, Views: views})
		}
		if ok && views > 0 {
			total += int64(views)
			counted++
		}
	}
	if counted == 0 {
		return last, 0
	}
	return last, total / counted
}

// PinnedMessages оборачивает закреп в список, как он хранится в БД.
func PinnedMessages(m *tg.Message) []models.PinnedMessage {
	if m == nil {
		return []models.PinnedMessage{{Text: noPinned}}
	}
	id := m.ID
	return []models.PinnedMessage{{Text: m.Message, ID: &id}}
}

// channelMessages достаёт сообщения из ответа и сортирует их от новых к старым.
func channelMessages(res tg.MessagesMessagesClass) []*tg.Message {
	var raw []tg.MessageClass
	switch r := res.(type) {
	case *tg.MessagesChannelMessages:
		raw = r.Messages
	case *tg.MessagesMessagesSlice:
		raw = r.Messages
	case *tg.MessagesMessages:
		raw = r.Messages
	}
	msgs := make([]*tg.Message, 0, len(raw))
	for _, m := range raw {
		if msg, ok := m.(*tg.Message); ok {
			msgs = append(msgs, msg)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID > msgs[j].ID })
	return msgs
}

func usernameOrDash(username string) string {
	if username == "" {
		return "-"
	}
	return username
}

// IsRetryable сообщает, имеет ли смысл повторить парсинг канала позже.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrChannelNotFound),
		errors.Is(err, ErrChannelPrivate),
		errors.Is(err, ErrUnauthorized):
		return false
	}
	return true
}
