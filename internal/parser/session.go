package parser

import (
	"context"

	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"tgcatalog/pkg/telegram"
)

// TelegramSession открывает клиент gotd на время одного вызова fn.
func TelegramSession(opts telegram.ClientOptions, log *zap.Logger) Session {
	return func(ctx context.Context, fn func(ctx context.Context, p ChannelParser) error) error {
		client, err := telegram.NewClient(opts)
		if err != nil {
			return err
		}
		return client.Run(ctx, func(ctx context.Context) error {
			if err := telegram.EnsureAuthorized(ctx, client); err != nil {
				return err
			}
			return fn(ctx, telegram.NewParser(tg.NewClient(client), log))
		})
	}
}
