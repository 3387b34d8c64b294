package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tgcatalog/pkg/telegram"
)

func newLoginCmd(cfgPath *string) *cobra.Command {
	var phone, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Авторизовать сессию Telegram для парсера",
		Long: `Входит в Telegram по номеру телефона и сохраняет сессию в таблицу telegram_session
под именем telegram.session_name. Код подтверждения запрашивается в терминале.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadApp(*cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if !cfg.Telegram.Configured() {
				return fmt.Errorf("задайте telegram.api_id и telegram.api_hash")
			}

			db, err := requireDB(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			client, err := telegram.NewClient(clientOptions(cfg, db, log.Named("login")))
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			prompt := func(context.Context) (string, error) {
				fmt.Fprint(cmd.OutOrStdout(), "Код из Telegram: ")
				code, err := in.ReadString('\n')
				return strings.TrimSpace(code), err
			}
			if err := telegram.Login(ctx, client, telegram.Authenticator{
				PhoneNumber: phone,
				TwoFA:       password,
				Prompt:      prompt,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Сессия %q сохранена\n", cfg.Telegram.SessionName)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "номер телефона в международном формате")
	cmd.Flags().StringVar(&password, "password", "", "пароль двухфакторной аутентификации")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
