package models

import "time"

// ChannelStats — снимок числа подписчиков канала на момент парсинга.
type ChannelStats struct {
	ID                int64     `json:"id"`
	ChannelID         int64     `json:"channel_id"`
	ParticipantsCount int64     `json:"participants_count"`
	DailyGrowth       int64     `json:"daily_growth"`
	ParsedAt          time.Time `json:"parsed_at"`
}
