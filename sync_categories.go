package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tgcatalog/models"
	"tgcatalog/pkg/catalog"
	"tgcatalog/pkg/storage"
)

type categoryStore interface {
	DistinctChannelCategories(ctx context.Context) ([]string, error)
	ResolveOwner(ctx context.Context, ref storage.OwnerRef) (*models.User, error)
	SyncCategoryGroups(ctx context.Context, categories []string, opts storage.SyncOptions) (storage.SyncResult, error)
}

func newSyncCategoriesCmd(cfgPath *string) *cobra.Command {
	var (
		source string
		owner  storage.OwnerRef
		opts   storage.SyncOptions
	)

	cmd := &cobra.Command{
		Use:   "sync-categories",
		Short: "Создать автоподборку для каждой категории",
		Long: `Создаёт подборку и правило автоподбора для каждой категории.

Источник категорий:
  choices — список категорий формы парсера (по умолчанию)
  db      — категории, которые уже есть у каналов

Примеры:
  tgcatalog sync-categories --dry-run
  tgcatalog sync-categories --source db --owner-username admin --start-order 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source != "choices" && source != "db" {
				return fmt.Errorf("--source: ожидается choices или db, получено %q", source)
			}
			ctx := cmd.Context()
			cfg, log, err := loadApp(*cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := requireDB(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			return syncCategories(ctx, cmd.OutOrStdout(), db, source, owner, opts)
		},
	}

	cmd.Flags().StringVar(&source, "source", "choices", "источник категорий: choices|db")
	cmd.Flags().Int64Var(&owner.ID, "owner-id", 0, "id владельца подборок")
	cmd.Flags().StringVar(&owner.Username, "owner-username", "", "username владельца подборок")
	cmd.Flags().StringVar(&owner.Email, "owner-email", "", "email владельца подборок")
	cmd.Flags().IntVar(&opts.StartOrder, "start-order", 10, "порядок первой созданной подборки")
	cmd.Flags().IntVar(&opts.OrderStep, "order-step", 10, "шаг порядка между подборками")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "выполнить без сохранения")
	return cmd
}

func syncCategories(ctx context.Context, out io.Writer, db categoryStore, source string, owner storage.OwnerRef, opts storage.SyncOptions) error {
	categories := catalog.DefaultCategories
	if source == "db" {
		var err error
		if categories, err = db.DistinctChannelCategories(ctx); err != nil {
			return err
		}
		if len(storage.NormalizeCategories(categories)) == 0 {
			fmt.Fprintln(out, "Категории не найдены.")
			return nil
		}
	}

	u, err := db.ResolveOwner(ctx, owner)
	if err != nil {
		return err
	}
	opts.OwnerID = u.ID

	res, err := db.SyncCategoryGroups(ctx, categories, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Владелец: %s (id=%d)\n", u.Username, u.ID)
	fmt.Fprintf(out, "Категорий: %d\n", res.Categories)
	fmt.Fprintf(out, "Создано подборок: %d\n", res.CreatedGroups)
	fmt.Fprintf(out, "Создано правил: %d\n", res.CreatedRules)
	fmt.Fprintf(out, "Обновлено правил: %d\n", res.UpdatedRules)
	if opts.DryRun {
		fmt.Fprintln(out, "DRY RUN: изменения откатены")
	}
	return nil
}
