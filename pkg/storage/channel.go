package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tgcatalog/models"
)

// ListCatalogChannels возвращает карточки каналов для каталога в порядке id.
// Каналы без категории в каталог не попадают.
func (db *DB) ListCatalogChannels(ctx context.Context) ([]models.Channel, error) {
	rows, err := db.Conn.QueryContext(ctx, `
		SELECT id, title, participants_count, category, verified, country, image_url
		FROM telegram_channels
		WHERE category <> ''
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := make([]models.Channel, 0)
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Subscribers, &ch.Category, &ch.Verified, &ch.Country, &ch.ImageURL); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return channels, nil
}

// UpsertChannel создаёт канал или обновляет существующий по channel_id.
// Возвращает id строки и признак того, что строка создана.
func (db *DB) UpsertChannel(ctx context.Context, ch models.TelegramChannel) (int64, bool, error) {
	pinned, err := json.Marshal(nonNilPinned(ch.PinnedMessages))
	if err != nil {
		return 0, false, err
	}
	last, err := json.Marshal(nonNilPosts(ch.LastMessages))
	if err != nil {
		return 0, false, err
	}

	var (
		id      int64
		created bool
	)
	// xmax = 0 только у только что вставленной строки
	err = db.Conn.QueryRowContext(ctx, `
		INSERT INTO telegram_channels (
			channel_id, title, username, description, participants_count, average_views,
			verified, language, country, category, image_url, pinned_messages, last_messages, creation_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (channel_id) DO UPDATE SET
			title = EXCLUDED.title,
			username = EXCLUDED.username,
			description = EXCLUDED.description,
			participants_count = EXCLUDED.participants_count,
			average_views = EXCLUDED.average_views,
			verified = EXCLUDED.verified,
			language = EXCLUDED.language,
			country = EXCLUDED.country,
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url,
			pinned_messages = EXCLUDED.pinned_messages,
			last_messages = EXCLUDED.last_messages,
			creation_date = EXCLUDED.creation_date
		RETURNING id, (xmax = 0)
	`,
		ch.ChannelID, ch.Title, ch.Username, ch.Description, ch.ParticipantsCount, ch.AverageViews,
		ch.Verified, ch.Language, ch.Country, ch.Category, ch.ImageURL, string(pinned), string(last), ch.CreationDate,
	).Scan(&id, &created)
	if err != nil {
		return 0, false, fmt.Errorf("не удалось сохранить канал %d: %w", ch.ChannelID, err)
	}
	return id, created, nil
}

// GetChannelByUsername возвращает канал по username.
func (db *DB) GetChannelByUsername(ctx context.Context, username string) (*models.TelegramChannel, error) {
	var (
		ch             models.TelegramChannel
		pinned, last   []byte
		created, parse sql.NullTime
	)
	err := db.Conn.QueryRowContext(ctx, `
		SELECT id, channel_id, title, username, description, participants_count, average_views,
		       verified, language, country, category, image_url, pinned_messages, last_messages,
		       creation_date, parsed_at
		FROM telegram_channels
		WHERE username = $1
	`, username).Scan(
		&ch.ID, &ch.ChannelID, &ch.Title, &ch.Username, &ch.Description, &ch.ParticipantsCount, &ch.AverageViews,
		&ch.Verified, &ch.Language, &ch.Country, &ch.Category, &ch.ImageURL, &pinned, &last,
		&created, &parse,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pinned, &ch.PinnedMessages); err != nil {
		return nil, fmt.Errorf("pinned_messages канала %s: %w", username, err)
	}
	if err := json.Unmarshal(last, &ch.LastMessages); err != nil {
		return nil, fmt.Errorf("last_messages канала %s: %w", username, err)
	}
	ch.CreationDate = nullTimePtr(created)
	ch.ParsedAt = nullTimePtr(parse)
	return &ch, nil
}

// ListChannelUsernames возвращает username всех каналов для фонового парсинга.
// Каналы без username ("-") пропускаются.
func (db *DB) ListChannelUsernames(ctx context.Context) ([]string, error) {
	rows, err := db.Conn.QueryContext(ctx, `SELECT username FROM telegram_channels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if name.Valid && name.String != "" && name.String != "-" {
			names = append(names, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func nonNilPinned(p []models.PinnedMessage) []models.PinnedMessage {
	if p == nil {
		return []models.PinnedMessage{}
	}
	return p
}

func nonNilPosts(p []models.ChannelPost) []models.ChannelPost {
	if p == nil {
		return []models.ChannelPost{}
	}
	return p
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
