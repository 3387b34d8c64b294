package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgcatalog/models"
)

func ch(id int64, category string) models.Channel {
	return models.Channel{ID: id, Name: "канал", Category: category}
}

func ids(channels []models.Channel) []int64 {
	out := make([]int64, 0, len(channels))
	for _, c := range channels {
		out = append(out, c.ID)
	}
	return out
}

// TestGroupByCategoryKeepsFirstSeenOrder проверяет порядок категорий и порядок каналов внутри групп.
func TestGroupByCategoryKeepsFirstSeenOrder(t *testing.T) {
	input := []models.Channel{ch(1, "b"), ch(2, "a"), ch(3, "b"), ch(4, "c"), ch(5, "a")}

	groups, err := GroupByCategory(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "c"}, groups.Categories())
	b, ok := groups.Get("b")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 3}, ids(b))
	a, _ := groups.Get("a")
	assert.Equal(t, []int64{2, 5}, ids(a))
	_, ok = groups.Get("missing")
	assert.False(t, ok)
}

// TestGroupByCategoryCoversInput — каждый канал ровно в одной группе, под своей категорией.
func TestGroupByCategoryCoversInput(t *testing.T) {
	input := FixtureChannels()
	groups, err := GroupByCategory(input)
	require.NoError(t, err)

	seen := make(map[int64]int)
	for _, g := range groups.Groups() {
		for _, c := range g.Channels {
			assert.Equal(t, g.Category, c.Category)
			seen[c.ID]++
		}
	}
	require.Len(t, seen, len(input))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "канал %d встречается %d раз", id, n)
	}
}

// TestGroupByCategoryIsDeterministic — повторный запуск даёт тот же результат.
func TestGroupByCategoryIsDeterministic(t *testing.T) {
	first, err := GroupByCategory(FixtureChannels())
	require.NoError(t, err)
	second, err := GroupByCategory(FixtureChannels())
	require.NoError(t, err)

	if diff := cmp.Diff(first.Groups(), second.Groups()); diff != "" {
		t.Fatalf("группировка нестабильна (-first +second):\n%s", diff)
	}
}

// TestCountsAgreeWithGroups — count[c] == len(groups[c]) и нулевых категорий нет.
func TestCountsAgreeWithGroups(t *testing.T) {
	inputs := map[string][]models.Channel{
		"empty":  nil,
		"single": {ch(1, "x")},
		"same":   {ch(1, "x"), ch(2, "x"), ch(3, "x")},
		"mixed":  FixtureChannels(),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			groups, err := GroupByCategory(input)
			require.NoError(t, err)
			counts, err := CountByCategory(input)
			require.NoError(t, err)

			assert.Equal(t, groups.Len(), counts.Len())
			assert.Equal(t, groups.Categories(), counts.Categories())
			for _, g := range groups.Groups() {
				n, ok := counts.Get(g.Category)
				require.True(t, ok)
				assert.Equal(t, len(g.Channels), n)
			}
			_, ok := counts.Get("нет такой")
			assert.False(t, ok)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	groups, err := GroupByCategory(nil)
	require.NoError(t, err)
	assert.Zero(t, groups.Len())

	counts, err := CountByCategory([]models.Channel{})
	require.NoError(t, err)
	assert.Empty(t, ToCountEntries(counts))
}

// TestMissingCategoryIsRejected — канал без категории не превращается в «без категории».
func TestMissingCategoryIsRejected(t *testing.T) {
	input := []models.Channel{ch(1, "a"), ch(42, ""), ch(3, "b")}

	_, err := GroupByCategory(input)
	require.ErrorIs(t, err, ErrInvalidEntry)
	var entryErr *InvalidEntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 1, entryErr.Index)
	assert.Equal(t, int64(42), entryErr.ID)

	counts, err := CountByCategory(input)
	require.ErrorIs(t, err, ErrInvalidEntry)
	assert.Zero(t, counts.Len())
}

func TestGroupByCategoryDoesNotMutateInput(t *testing.T) {
	input := FixtureChannels()
	before := FixtureChannels()

	_, err := GroupByCategory(input)
	require.NoError(t, err)
	_, err = CountByCategory(input)
	require.NoError(t, err)

	if diff := cmp.Diff(before, input); diff != "" {
		t.Fatalf("вход изменён (-before +after):\n%s", diff)
	}
}

// TestFixtureCatalog — сквозной сценарий на демонстрационном каталоге.
func TestFixtureCatalog(t *testing.T) {
	channels := FixtureChannels()
	require.Len(t, channels, 17)

	counts, err := CountByCategory(channels)
	require.NoError(t, err)

	top := 0
	for _, e := range ToCountEntries(counts) {
		top = max(top, e.Count)
	}
	economy, _ := counts.Get("Экономика")
	assert.Equal(t, 4, economy)
	assert.Equal(t, 4, top)

	entries := ToCountEntries(counts)
	want := []CountEntry{
		{"Новости и СМИ", 4},
		{"Экономика", 4},
		{"Политика", 2},
		{"Видео и фильмы", 2},
		{"Финансы", 1},
		{"Картинки и фото", 1},
		{"Здоровье", 1},
		{"Лингвистика", 1},
		{"Технологии", 1},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("неверные счётчики (-want +got):\n%s", diff)
	}

	mobile, err := SelectCategoriesForDisplay(entries, ViewportMobile)
	require.NoError(t, err)
	assert.Equal(t, want[:3], mobile)
}
