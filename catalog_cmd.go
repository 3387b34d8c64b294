package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tgcatalog/models"
	"tgcatalog/pkg/catalog"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginTop(1)
	tileStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	verifiedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("✓")
)

func newCatalogCmd(cfgPath *string) *cobra.Command {
	var (
		viewport string
		width    int
		filter   catalog.Filter
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Показать страницу каталога в терминале",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := catalog.ViewportDesktop
			switch {
			case viewport != "":
				parsed, err := catalog.ParseViewport(viewport)
				if err != nil {
					return err
				}
				v = parsed
			case width > 0:
				v = catalog.ViewportForWidth(width)
			}

			ctx := cmd.Context()
			cfg, log, err := loadApp(*cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			channels := catalog.FixtureChannels()
			db, err := openDB(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
				fromDB, err := db.ListCatalogChannels(ctx)
				if err != nil {
					return err
				}
				if len(fromDB) > 0 {
					channels = fromDB
				}
			}

			page, err := catalog.BuildPage(catalog.FilterChannels(channels, filter), v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPage(page))
			return nil
		},
	}

	cmd.Flags().StringVar(&viewport, "viewport", "", "класс экрана: mobile|tablet|desktop")
	cmd.Flags().IntVar(&width, "width", 0, "ширина экрана в пикселях, если --viewport не задан")
	cmd.Flags().StringVar(&filter.Country, "country", "", "показать только каналы страны")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "поиск по названию")
	return cmd
}

// renderPage выводит страницу каталога в текстовом виде.
func renderPage(p *catalog.Page) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Каталог подборок Telegram"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  [%s]", p.Viewport)))
	b.WriteByte('\n')
	if len(p.Countries) > 0 {
		b.WriteString(mutedStyle.Render("Страны: " + strings.Join(p.Countries, ", ")))
		b.WriteByte('\n')
	}

	if len(p.Categories) > 0 {
		b.WriteString(titleStyle.Render("Категории"))
		b.WriteByte('\n')
		tiles := make([]string, 0, len(p.Categories))
		for _, t := range p.Categories {
			tiles = append(tiles, tileStyle.Render(t.Category+"\n"+mutedStyle.Render(t.CountLabel)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
		b.WriteByte('\n')
	}

	writeCards(&b, "Популярное", p.Featured)
	writeCards(&b, "Проверенные каналы", p.Verified)
	for _, s := range p.Sections {
		title := s.Category
		if s.Total > len(s.Channels) {
			title += mutedStyle.Render(fmt.Sprintf("  Ещё %d", s.Total-len(s.Channels)))
		}
		writeCards(&b, title, s.Channels)
	}
	return b.String()
}

func writeCards(b *strings.Builder, title string, cards []catalog.Card) {
	if len(cards) == 0 {
		return
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	for _, c := range cards {
		b.WriteString("  ")
		b.WriteString(cardLine(c.Channel))
		b.WriteString(mutedStyle.Render("  " + c.SubscribersLabel))
		b.WriteByte('\n')
	}
}

func cardLine(ch models.Channel) string {
	if ch.Verified {
		return ch.Name + " " + verifiedMark
	}
	return ch.Name
}
