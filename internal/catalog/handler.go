package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tgcatalog/internal/httputil"
	"tgcatalog/models"
	"tgcatalog/pkg/catalog"
)

// ChannelSource отдаёт каналы для каталога.
type ChannelSource interface {
	ListCatalogChannels(ctx context.Context) ([]models.Channel, error)
}

// Handler обслуживает страницу каталога.
type Handler struct {
	Channels ChannelSource // nil — работаем на демонстрационном каталоге
	Log      *zap.Logger
}

// NewHandler создаёт обработчик каталога.
func NewHandler(src ChannelSource, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Channels: src, Log: log}
}

// GetPage возвращает собранную страницу каталога для класса экрана.
func (h *Handler) GetPage(c *gin.Context) {
	v, ok := h.viewport(c)
	if !ok {
		return
	}
	channels, ok := h.load(c)
	if !ok {
		return
	}
	channels = catalog.FilterChannels(channels, catalog.Filter{
		Country: c.Query("country"),
		Query:   c.Query("q"),
	})

	page, err := catalog.BuildPage(channels, v)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCategories возвращает счётчики категорий.
func (h *Handler) GetCategories(c *gin.Context) {
	v, ok := h.viewport(c)
	if !ok {
		return
	}
	channels, ok := h.load(c)
	if !ok {
		return
	}
	tiles, err := catalog.CategoryTiles(channels, v)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewport": v, "categories": tiles})
}

// GetCategory возвращает секцию одной категории.
func (h *Handler) GetCategory(c *gin.Context) {
	v, ok := h.viewport(c)
	if !ok {
		return
	}
	channels, ok := h.load(c)
	if !ok {
		return
	}
	section, err := catalog.BuildSection(channels, c.Param("name"), v)
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		httputil.RespondError(c, http.StatusNotFound, "Категория не найдена")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// viewport берёт класс экрана из ?viewport=, иначе из ?width=, иначе desktop.
func (h *Handler) viewport(c *gin.Context) (catalog.Viewport, bool) {
	if s := c.Query("viewport"); s != "" {
		v, err := catalog.ParseViewport(s)
		if err != nil {
			httputil.RespondError(c, http.StatusBadRequest, "неизвестный viewport: "+s)
			return "", false
		}
		return v, true
	}
	if s := c.Query("width"); s != "" {
		px, err := strconv.Atoi(s)
		if err != nil || px < 0 {
			httputil.RespondError(c, http.StatusBadRequest, "некорректная ширина: "+s)
			return "", false
		}
		return catalog.ViewportForWidth(px), true
	}
	return catalog.ViewportDesktop, true
}

// load читает каналы из БД. Пустая таблица или отсутствие БД дают демонстрационный каталог.
func (h *Handler) load(c *gin.Context) ([]models.Channel, bool) {
	if h.Channels == nil {
		return catalog.FixtureChannels(), true
	}
	channels, err := h.Channels.ListCatalogChannels(c.Request.Context())
	if err != nil {
		h.Log.Error("не удалось загрузить каналы", zap.Error(err))
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
		return nil, false
	}
	if len(channels) == 0 {
		return catalog.FixtureChannels(), true
	}
	return channels, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var entryErr *catalog.InvalidEntryError
	if errors.As(err, &entryErr) {
		h.Log.Error("канал без категории", zap.Int64("channel_id", entryErr.ID), zap.Int("index", entryErr.Index))
	} else {
		h.Log.Error("не удалось собрать каталог", zap.Error(err))
	}
	httputil.RespondError(c, http.StatusInternalServerError, "catalog error")
}
