package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgcatalog/models"
	"tgcatalog/pkg/telegram"
)

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r.Group("/parser"), svc, nil)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/parser/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseHandler(t *testing.T) {
	store := newMemStore()
	var gotLimit int
	p := parserFunc(func(_ context.Context, username string, limit int) (*models.TelegramChannel, error) {
		gotLimit = limit
		return &models.TelegramChannel{ChannelID: 42, Title: "ТАСС", Username: username, ParticipantsCount: 100}, nil
	})
	r := newRouter(NewService(store, sessionWith(p), nil))

	w := post(r, `{"channel_identifier":"https://t.me/tass_agency","category":"Новости и СМИ","country":"Россия"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"message":"Канал добавлен: ТАСС"`)
	assert.Equal(t, telegram.DefaultLimit, gotLimit)
	assert.Equal(t, "Россия", store.channels["tass_agency"].Country)

	w = post(r, `{"channel_identifier":"tass_agency","limit":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Канал обновлён: ТАСС"`)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, "Новости и СМИ", store.channels["tass_agency"].Category)
	assert.Equal(t, "Россия", store.channels["tass_agency"].Country)

	w = post(r, `{"channel_identifier":"tass_agency","category":"Политика"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Политика", store.channels["tass_agency"].Category)
	assert.Empty(t, store.channels["tass_agency"].Country)
}

func TestParseHandlerRequestErrors(t *testing.T) {
	r := newRouter(NewService(newMemStore(), sessionWith(fakeTelegram(nil)), nil))

	assert.Equal(t, http.StatusBadRequest, post(r, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `{"channel_identifier":"tass_agency","limit":500}`).Code)

	w := post(r, `{"channel_identifier":"tass_agency","category":"Кулинария"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"errors":{"category":"Выберите категорию из списка"}}`, w.Body.String())

	w = post(r, `{"channel_identifier":"t.me/"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestParseHandlerTelegramErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{telegram.ErrChannelNotFound, http.StatusNotFound},
		{telegram.ErrChannelPrivate, http.StatusUnprocessableEntity},
		{telegram.ErrUnauthorized, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		p := parserFunc(func(context.Context, string, int) (*models.TelegramChannel, error) { return nil, tc.err })
		r := newRouter(NewService(newMemStore(), sessionWith(p), nil))
		assert.Equal(t, tc.code, post(r, `{"channel_identifier":"tass_agency"}`).Code, tc.err.Error())
	}
}

func TestParseHandlerNotConfigured(t *testing.T) {
	r := newRouter(nil)
	assert.Equal(t, http.StatusServiceUnavailable, post(r, `{"channel_identifier":"tass_agency"}`).Code)
}
