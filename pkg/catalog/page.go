package catalog

import (
	"fmt"

	"tgcatalog/models"
)

// featuredCount — сколько каналов показывается в верхней ленте на любом экране.
const featuredCount = 3

// Card — карточка канала с готовой подписью числа подписчиков.
type Card struct {
	models.Channel
	SubscribersLabel string `json:"subscribersLabel"`
}

// CategoryTile — плитка блока «Все категории».
type CategoryTile struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	CountLabel string `json:"countLabel"`
}

// Section — секция одной категории. Total хранит полное число каналов для ссылки «Ещё».
type Section struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Channels []Card `json:"channels"`
}

// Page — всё, что нужно странице каталога для одного класса экрана.
type Page struct {
	Viewport   Viewport       `json:"viewport"`
	Countries  []string       `json:"countries"`
	Featured   []Card         `json:"featured"`
	Verified   []Card         `json:"verified"`
	Categories []CategoryTile `json:"categories"`
	Sections   []Section      `json:"sections"`
}

// BuildPage собирает страницу каталога. Группировка и подсчёт выполняются один раз,
// дальше к ним применяются лимиты класса экрана.
func BuildPage(channels []models.Channel, v Viewport) (*Page, error) {
	limits, err := LimitsFor(v)
	if err != nil {
		return nil, err
	}
	groups, err := GroupByCategory(channels)
	if err != nil {
		return nil, err
	}
	counts, err := CountByCategory(channels)
	if err != nil {
		return nil, err
	}

	tiles, err := categoryTiles(ToCountEntries(counts), v)
	if err != nil {
		return nil, err
	}
	verified, err := SelectVerifiedForDisplay(channels, v)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Viewport:   v,
		Countries:  Countries(channels),
		Featured:   cards(takePrefix(channels, featuredCount)),
		Verified:   cards(verified),
		Categories: tiles,
		Sections:   make([]Section, 0, groups.Len()),
	}
	for _, group := range groups.Groups() {
		page.Sections = append(page.Sections, Section{
			Category: group.Category,
			Total:    len(group.Channels),
			Channels: cards(takePrefix(group.Channels, limits.GroupMembers)),
		})
	}
	return page, nil
}

// BuildSection собирает секцию одной категории.
func BuildSection(channels []models.Channel, category string, v Viewport) (*Section, error) {
	groups, err := GroupByCategory(channels)
	if err != nil {
		return nil, err
	}
	members, ok := groups.Get(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	shown, err := SelectGroupMembersForDisplay(members, v)
	if err != nil {
		return nil, err
	}
	return &Section{Category: category, Total: len(members), Channels: cards(shown)}, nil
}

// CategoryTiles считает и обрезает плитки категорий для класса экрана.
func CategoryTiles(channels []models.Channel, v Viewport) ([]CategoryTile, error) {
	counts, err := CountByCategory(channels)
	if err != nil {
		return nil, err
	}
	return categoryTiles(ToCountEntries(counts), v)
}

func categoryTiles(entries []CountEntry, v Viewport) ([]CategoryTile, error) {
	shown, err := SelectCategoriesForDisplay(entries, v)
	if err != nil {
		return nil, err
	}
	tiles := make([]CategoryTile, 0, len(shown))
	for _, e := range shown {
		label, err := FormatCountShort(int64(e.Count))
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, CategoryTile{Category: e.Category, Count: e.Count, CountLabel: label})
	}
	return tiles, nil
}

// Countries возвращает страны каналов без повторов в порядке первого появления.
// Каналы без страны в список не попадают.
func Countries(channels []models.Channel) []string {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, ch := range channels {
		if ch.Country == "" {
			continue
		}
		if _, ok := seen[ch.Country]; ok {
			continue
		}
		seen[ch.Country] = struct{}{}
		countries = append(countries, ch.Country)
	}
	return countries
}

func cards(channels []models.Channel) []Card {
	out := make([]Card, 0, len(channels))
	for _, ch := range channels {
		out = append(out, Card{Channel: ch, SubscribersLabel: SubscribersLabel(ch.Subscribers)})
	}
	return out
}
