package storage

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgcatalog/models"
)

func TestListCatalogChannels(t *testing.T) {
	db, script := openFake(t, fakeStep{
		contains: "FROM telegram_channels",
		columns:  []string{"id", "title", "participants_count", "category", "verified", "country", "image_url"},
		rows: [][]driver.Value{
			{int64(1), "ТАСС", int64(8550929), "Новости и СМИ", true, "Россия", "img"},
			{int64(2), "Банкста", int64(413246), "Экономика", false, "Казахстан", ""},
		},
	})

	channels, err := db.ListCatalogChannels(context.Background())
	require.NoError(t, err)
	script.done(t)

	require.Len(t, channels, 2)
	assert.Equal(t, models.Channel{
		ID: 1, Name: "ТАСС", Subscribers: 8550929, Category: "Новости и СМИ",
		Verified: true, Country: "Россия", ImageURL: "img",
	}, channels[0])
	assert.False(t, channels[1].Verified)
}

func TestUpsertChannelEncodesMessages(t *testing.T) {
	db, script := openFake(t, fakeStep{
		contains: "ON CONFLICT (channel_id)",
		columns:  []string{"id", "created"},
		rows:     [][]driver.Value{{int64(7), true}},
	})

	created := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	id, isNew, err := db.UpsertChannel(context.Background(), models.TelegramChannel{
		ChannelID:    100,
		Title:        "Канал",
		Username:     "kanal",
		LastMessages: []models.ChannelPost{{PostID: 1, Text: "привет", Views: 10}},
		CreationDate: &created,
	})
	require.NoError(t, err)
	script.done(t)
	assert.Equal(t, int64(7), id)
	assert.True(t, isNew)

	args := script.args[0]
	require.Len(t, args, 14)
	assert.Equal(t, "[]", args[11].Value, "пустой список закрепов сохраняется как []")
	var posts []models.ChannelPost
	require.NoError(t, json.Unmarshal([]byte(args[12].Value.(string)), &posts))
	assert.Equal(t, "привет", posts[0].Text)
}

func TestGetChannelByUsername(t *testing.T) {
	parsed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	db, _ := openFake(t,
		fakeStep{
			contains: "WHERE username = $1",
			columns: []string{"id", "channel_id", "title", "username", "description", "participants_count", "average_views",
				"verified", "language", "country", "category", "image_url", "pinned_messages", "last_messages",
				"creation_date", "parsed_at"},
			rows: [][]driver.Value{{
				int64(1), int64(100), "Канал", "kanal", "Нет описания", int64(5), int64(3),
				false, "ru", "Россия", "Экономика", "", []byte(`[{"text":"закреп","id":5}]`), []byte(`[]`),
				nil, parsed,
			}},
		},
		fakeStep{contains: "WHERE username = $1", columns: []string{"id"}},
	)

	ch, err := db.GetChannelByUsername(context.Background(), "kanal")
	require.NoError(t, err)
	require.Len(t, ch.PinnedMessages, 1)
	require.NotNil(t, ch.PinnedMessages[0].ID)
	assert.Equal(t, 5, *ch.PinnedMessages[0].ID)
	assert.Nil(t, ch.CreationDate)
	require.NotNil(t, ch.ParsedAt)
	assert.True(t, parsed.Equal(*ch.ParsedAt))

	_, err = db.GetChannelByUsername(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListChannelUsernamesSkipsEmpty(t *testing.T) {
	db, _ := openFake(t, fakeStep{
		contains: "SELECT username FROM telegram_channels",
		columns:  []string{"username"},
		rows:     [][]driver.Value{{"tass"}, {"-"}, {nil}, {""}, {"rian"}},
	})

	names, err := db.ListChannelUsernames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tass", "rian"}, names)
}
