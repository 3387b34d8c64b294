package telegram

import (
	"database/sql"
	"fmt"

	"github.com/gotd/td/session"
	gotd "github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"tgcatalog/models"
)

// ClientOptions — параметры клиента парсера.
type ClientOptions struct {
	APIID       int
	APIHash     string
	SessionName string
	DB          *sql.DB       // без БД сессия живёт только в памяти
	Proxy       *models.Proxy // необязательный SOCKS5
	Logger      *zap.Logger
}

// NewClient создаёт клиент gotd с сессией в БД и, при необходимости, через SOCKS5.
func NewClient(o ClientOptions) (*gotd.Client, error) {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	var storage session.Storage = &session.StorageMemory{}
	if o.DB != nil {
		storage = &SessionStorage{DB: o.DB, Name: o.SessionName}
	}

	opts := gotd.Options{
		SessionStorage: storage,
		Logger:         o.Logger.Named("gotd"),
	}
	if o.Proxy != nil {
		var auth *proxy.Auth
		if o.Proxy.Login != "" || o.Proxy.Password != "" {
			auth = &proxy.Auth{User: o.Proxy.Login, Password: o.Proxy.Password}
		}
		d, err := proxy.SOCKS5("tcp", o.Proxy.Addr(), auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("proxy dialer: %w", err)
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("proxy dialer missing context")
		}
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		o.Logger.Info("клиент Telegram через прокси", zap.String("proxy", o.Proxy.Addr()))
	}
	return gotd.NewClient(o.APIID, o.APIHash, opts), nil
}
