package models

import "time"

// Channel — карточка канала в каталоге.
// Каталог только читает эти значения и никогда их не изменяет.
type Channel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Subscribers int64  `json:"subscribers"`
	Category    string `json:"category"`
	Verified    bool   `json:"verified"`
	Country     string `json:"country"`
	ImageURL    string `json:"imageUrl"`
}

// TelegramChannel — строка таблицы telegram_channels, заполняемая парсером.
type TelegramChannel struct {
	ID                int64           `json:"id"`
	ChannelID         int64           `json:"channel_id"`
	Title             string          `json:"title"`
	Username          string          `json:"username"`
	Description       string          `json:"description"`
	ParticipantsCount int64           `json:"participants_count"`
	AverageViews      int64           `json:"average_views"`
	Verified          bool            `json:"verified"`
	Language          string          `json:"language"`
	Country           string          `json:"country"`
	Category          string          `json:"category"`
	ImageURL          string          `json:"image_url"`
	PinnedMessages    []PinnedMessage `json:"pinned_messages"`
	LastMessages      []ChannelPost   `json:"last_messages"`
	CreationDate      *time.Time      `json:"creation_date"`
	ParsedAt          *time.Time      `json:"parsed_at"`
}

// ChannelPost — один из последних постов канала.
type ChannelPost struct {
	PostID int    `json:"post_id"`
	Text   string `json:"post_text"`
	Views  int    `json:"post_views"`
}

// PinnedMessage — закреплённое сообщение канала. ID пустой, если закрепа нет.
type PinnedMessage struct {
	Text string `json:"text"`
	ID   *int   `json:"id"`
}

// CatalogEntry переводит строку парсера в карточку каталога.
func (c TelegramChannel) CatalogEntry() Channel {
	return Channel{
		ID:          c.ID,
		Name:        c.Title,
		Subscribers: c.ParticipantsCount,
		Category:    c.Category,
		Verified:    c.Verified,
		Country:     c.Country,
		ImageURL:    c.ImageURL,
	}
}
