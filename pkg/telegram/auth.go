package telegram

import (
	"context"
	"errors"
	"fmt"

	gotd "github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// CodePrompt запрашивает у оператора код из Telegram.
type CodePrompt func(ctx context.Context) (string, error)

// Authenticator реализует auth.UserAuthenticator для входа сессии парсера.
type Authenticator struct {
	PhoneNumber string
	TwoFA       string // пароль двухфакторной аутентификации, если включена
	Prompt      CodePrompt
}

var _ auth.UserAuthenticator = Authenticator{}

func (a Authenticator) Phone(context.Context) (string, error) { return a.PhoneNumber, nil }

func (a Authenticator) Password(context.Context) (string, error) {
	if a.TwoFA == "" {
		return "", auth.ErrPasswordNotProvided
	}
	return a.TwoFA, nil
}

func (a Authenticator) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	if a.Prompt == nil {
		return "", errors.New("не задан способ ввода кода")
	}
	return a.Prompt(ctx)
}

func (a Authenticator) AcceptTermsOfService(context.Context, tg.HelpTermsOfService) error {
	return nil
}

func (a Authenticator) SignUp(context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("регистрация новых аккаунтов не поддерживается")
}

// Login авторизует сессию клиента, если она ещё не авторизована.
// Сессия сохраняется в хранилище клиента.
func Login(ctx context.Context, client *gotd.Client, a Authenticator) error {
	return client.Run(ctx, func(ctx context.Context) error {
		if err := client.Auth().IfNecessary(ctx, auth.NewFlow(a, auth.SendCodeOptions{})); err != nil {
			return fmt.Errorf("авторизация %s: %w", a.PhoneNumber, err)
		}
		return nil
	})
}

// EnsureAuthorized возвращает ErrUnauthorized, если сессия не авторизована.
// Вызывается внутри client.Run.
func EnsureAuthorized(ctx context.Context, client *gotd.Client) error {
	status, err := client.Auth().Status(ctx)
	if err != nil {
		return err
	}
	if !status.Authorized {
		return ErrUnauthorized
	}
	return nil
}
