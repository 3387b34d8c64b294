package storage

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgcatalog/models"
)

func TestDailyGrowth(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, msk)

	assert.Equal(t, int64(0), DailyGrowth(nil, 100, now))

	yesterday := &models.ChannelStats{ParticipantsCount: 90, DailyGrowth: 4, ParsedAt: now.Add(-24 * time.Hour)}
	assert.Equal(t, int64(10), DailyGrowth(yesterday, 100, now))

	sameDay := &models.ChannelStats{ParticipantsCount: 90, DailyGrowth: 4, ParsedAt: now.Add(-time.Hour)}
	assert.Equal(t, int64(4), DailyGrowth(sameDay, 100, now))

	// 22:30 UTC 1 мая — это уже 2 мая по Москве
	lateUTC := &models.ChannelStats{ParticipantsCount: 90, DailyGrowth: 4, ParsedAt: time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)}
	assert.Equal(t, int64(4), DailyGrowth(lateUTC, 100, now))
}

func TestSaveChannelStats(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	db, script := openFake(t,
		fakeStep{
			contains: "FROM channel_stats",
			columns:  []string{"id", "channel", "participants_count", "daily_growth", "parsed_at"},
			rows:     [][]driver.Value{{int64(1), int64(9), int64(80), int64(0), now.Add(-48 * time.Hour)}},
		},
		fakeStep{contains: "INSERT INTO channel_stats", columns: []string{"id"}, rows: [][]driver.Value{{int64(2)}}},
		fakeStep{contains: "UPDATE telegram_channels SET parsed_at", affected: 1},
	)

	stats, err := db.SaveChannelStats(context.Background(), 9, 100, now)
	require.NoError(t, err)
	script.done(t)

	assert.Equal(t, int64(2), stats.ID)
	assert.Equal(t, int64(20), stats.DailyGrowth)
	assert.Equal(t, []string{"BEGIN", "COMMIT"}, script.tx)
}

func TestSaveChannelStatsFirstSnapshot(t *testing.T) {
	now := time.Now()
	db, _ := openFake(t,
		fakeStep{contains: "FROM channel_stats", columns: []string{"id", "channel", "participants_count", "daily_growth", "parsed_at"}},
		fakeStep{contains: "INSERT INTO channel_stats", columns: []string{"id"}, rows: [][]driver.Value{{int64(1)}}},
		fakeStep{contains: "UPDATE telegram_channels", affected: 1},
	)

	stats, err := db.SaveChannelStats(context.Background(), 9, 100, now)
	require.NoError(t, err)
	assert.Zero(t, stats.DailyGrowth)
}
