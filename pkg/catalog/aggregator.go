package catalog

import "tgcatalog/models"

// CategoryGroup — каналы одной категории в исходном порядке.
type CategoryGroup struct {
	Category string           `json:"category"`
	Channels []models.Channel `json:"channels"`
}

// CategoryGroups — упорядоченное отображение категория -> каналы.
// Порядок категорий совпадает с порядком их первого появления во входном списке,
// index нужен только для поиска и на порядок не влияет.
type CategoryGroups struct {
	groups []CategoryGroup
	index  map[string]int
}

// Len возвращает число категорий.
func (g CategoryGroups) Len() int { return len(g.groups) }

// Get возвращает каналы категории.
func (g CategoryGroups) Get(category string) ([]models.Channel, bool) {
	i, ok := g.index[category]
	if !ok {
		return nil, false
	}
	return g.groups[i].Channels, true
}

// Groups возвращает группы в порядке первого появления категорий.
func (g CategoryGroups) Groups() []CategoryGroup {
	out := make([]CategoryGroup, len(g.groups))
	copy(out, g.groups)
	return out
}

// Categories возвращает названия категорий в порядке первого появления.
func (g CategoryGroups) Categories() []string {
	out := make([]string, 0, len(g.groups))
	for _, group := range g.groups {
		out = append(out, group.Category)
	}
	return out
}

// CountEntry — пара категория/число каналов.
type CountEntry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCounts — упорядоченное отображение категория -> число каналов.
type CategoryCounts struct {
	entries []CountEntry
	index   map[string]int
}

// Len возвращает число категорий.
func (c CategoryCounts) Len() int { return len(c.entries) }

// Get возвращает число каналов категории.
// Для категорий, которых нет во входном списке, возвращается false, а не ноль.
func (c CategoryCounts) Get(category string) (int, bool) {
	i, ok := c.index[category]
	if !ok {
		return 0, false
	}
	return c.entries[i].Count, true
}

// Categories возвращает названия категорий в порядке первого появления.
func (c CategoryCounts) Categories() []string {
	out := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Category)
	}
	return out
}

// GroupByCategory раскладывает каналы по категориям за один проход.
// Каждый канал попадает ровно в одну группу. Канал без категории прерывает
// операцию с *InvalidEntryError, частичный результат не возвращается.
func GroupByCategory(channels []models.Channel) (CategoryGroups, error) {
	groups := CategoryGroups{index: make(map[string]int)}
	for i, ch := range channels {
		if ch.Category == "" {
			return CategoryGroups{}, &InvalidEntryError{Index: i, ID: ch.ID}
		}
		pos, ok := groups.index[ch.Category]
		if !ok {
			pos = len(groups.groups)
			groups.index[ch.Category] = pos
			groups.groups = append(groups.groups, CategoryGroup{Category: ch.Category})
		}
		groups.groups[pos].Channels = append(groups.groups[pos].Channels, ch)
	}
	return groups, nil
}

// CountByCategory считает каналы по категориям независимо от GroupByCategory.
// Для любого входа count[c] совпадает с длиной группы c.
func CountByCategory(channels []models.Channel) (CategoryCounts, error) {
	counts := CategoryCounts{index: make(map[string]int)}
	for i, ch := range channels {
		if ch.Category == "" {
			return CategoryCounts{}, &InvalidEntryError{Index: i, ID: ch.ID}
		}
		pos, ok := counts.index[ch.Category]
		if !ok {
			pos = len(counts.entries)
			counts.index[ch.Category] = pos
			counts.entries = append(counts.entries, CountEntry{Category: ch.Category})
		}
		counts.entries[pos].Count++
	}
	return counts, nil
}

// ToCountEntries разворачивает счётчики в последовательность пар
// в порядке первого появления категорий.
func ToCountEntries(counts CategoryCounts) []CountEntry {
	out := make([]CountEntry, len(counts.entries))
	copy(out, counts.entries)
	return out
}
