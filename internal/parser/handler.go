package parser

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tgcatalog/internal/httputil"
	"tgcatalog/pkg/catalog"
	"tgcatalog/pkg/telegram"
)

// ParseRequest — форма добавления канала в парсер.
type ParseRequest struct {
	ChannelIdentifier string `json:"channel_identifier" binding:"required"`
	Limit             int    `json:"limit" binding:"omitempty,min=1,max=100"`
	Language          string `json:"language"`
	Country           string `json:"country"`
	Category          string `json:"category"`
}

// Handler запускает парсинг канала по запросу.
type Handler struct {
	Service *Service // nil, если Telegram API не настроен
	Log     *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

// Parse парсит канал и сохраняет его вместе со статистикой.
func (h *Handler) Parse(c *gin.Context) {
	if h.Service == nil {
		httputil.RespondError(c, http.StatusServiceUnavailable, "Парсер не настроен")
		return
	}
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if req.Category != "" && !slices.Contains(catalog.DefaultCategories, req.Category) {
		httputil.RespondFieldErrors(c, map[string]string{"category": "Выберите категорию из списка"})
		return
	}
	if req.Limit == 0 {
		req.Limit = telegram.DefaultLimit
	}

	res, err := h.Service.ParseAndSave(c.Request.Context(), req.ChannelIdentifier, req.Limit, req.meta())
	if err != nil {
		h.respondParseError(c, req.ChannelIdentifier, err)
		return
	}

	msg := "Канал обновлён: " + res.Channel.Title
	if res.Created {
		msg = "Канал добавлен: " + res.Channel.Title
	}
	h.Log.Info(msg, zap.Int64("channel_id", res.Channel.ChannelID), zap.Int64("growth", res.Stats.DailyGrowth))
	c.JSON(http.StatusOK, gin.H{"message": msg, "result": res})
}

// meta возвращает nil, если запрос не задаёт ни язык, ни страну, ни категорию:
// тогда сохраняются значения, уже записанные у канала.
func (r ParseRequest) meta() *Meta {
	if r.Language == "" && r.Country == "" && r.Category == "" {
		return nil
	}
	return &Meta{Language: r.Language, Country: r.Country, Category: r.Category}
}

func (h *Handler) respondParseError(c *gin.Context, identifier string, err error) {
	switch {
	case errors.Is(err, telegram.ErrInvalidIdentifier):
		httputil.RespondFieldErrors(c, map[string]string{"channel_identifier": "Некорректная ссылка или username канала"})
	case errors.Is(err, telegram.ErrChannelNotFound):
		httputil.RespondError(c, http.StatusNotFound, "Канал не найден")
	case errors.Is(err, telegram.ErrChannelPrivate):
		httputil.RespondError(c, http.StatusUnprocessableEntity, "Канал приватный или недоступен")
	case errors.Is(err, telegram.ErrChannelBusy):
		httputil.RespondError(c, http.StatusConflict, "Канал уже обрабатывается")
	case errors.Is(err, telegram.ErrUnauthorized):
		h.Log.Error("сессия Telegram не авторизована")
		httputil.RespondError(c, http.StatusServiceUnavailable, "Сессия Telegram не авторизована")
	default:
		h.Log.Error("ошибка парсинга", zap.String("channel", identifier), zap.Error(err))
		httputil.RespondError(c, http.StatusBadGateway, "Не удалось получить данные канала")
	}
}
