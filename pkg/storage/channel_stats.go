package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tgcatalog/models"
)

// DailyGrowth вычисляет прирост подписчиков относительно последнего снимка.
// Снимок за другой календарный день даёт разницу, за тот же день повторяет
// прежний прирост, без истории прирост нулевой.
func DailyGrowth(last *models.ChannelStats, current int64, now time.Time) int64 {
	if last == nil {
		return 0
	}
	ly, lm, ld := last.ParsedAt.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	if ly != ny || lm != nm || ld != nd {
		return current - last.ParticipantsCount
	}
	return last.DailyGrowth
}

// SaveChannelStats записывает новый снимок подписчиков и обновляет parsed_at канала.
func (db *DB) SaveChannelStats(ctx context.Context, channelID, participants int64, now time.Time) (*models.ChannelStats, error) {
	tx, err := db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var last *models.ChannelStats
	var prev models.ChannelStats
	err = tx.QueryRowContext(ctx, `
		SELECT id, channel, participants_count, daily_growth, parsed_at
		FROM channel_stats
		WHERE channel = $1
		ORDER BY parsed_at DESC
		LIMIT 1
	`, channelID).Scan(&prev.ID, &prev.ChannelID, &prev.ParticipantsCount, &prev.DailyGrowth, &prev.ParsedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		last = &prev
	}

	stats := models.ChannelStats{
		ChannelID:         channelID,
		ParticipantsCount: participants,
		DailyGrowth:       DailyGrowth(last, participants, now),
		ParsedAt:          now,
	}
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO channel_stats (channel, participants_count, daily_growth, parsed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, stats.ChannelID, stats.ParticipantsCount, stats.DailyGrowth, stats.ParsedAt).Scan(&stats.ID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE telegram_channels SET parsed_at = $1 WHERE id = $2`, now, channelID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stats, nil
}
