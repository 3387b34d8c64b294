package telegram

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gotd/td/session"
)

// SessionStorage хранит сессию gotd в таблице telegram_session под именем Name.
type SessionStorage struct {
	DB   *sql.DB
	Name string
}

var _ session.Storage = (*SessionStorage)(nil)

// LoadSession загружает сессию из БД.
func (s *SessionStorage) LoadSession(ctx context.Context) ([]byte, error) {
	if s == nil || s.DB == nil {
		return nil, session.ErrNotFound
	}

	var data string
	err := s.DB.QueryRowContext(ctx, `SELECT data_json FROM telegram_session WHERE name = $1`, s.Name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("чтение сессии %s: %w", s.Name, err)
	}
	return []byte(data), nil
}

// StoreSession сохраняет сессию, перезаписывая прежнюю запись с тем же именем.
func (s *SessionStorage) StoreSession(ctx context.Context, data []byte) error {
	if s == nil || s.DB == nil {
		return session.ErrNotFound
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO telegram_session (name, data_json) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET data_json = EXCLUDED.data_json, date_time = NOW()
	`, s.Name, string(data))
	if err != nil {
		return fmt.Errorf("сохранение сессии %s: %w", s.Name, err)
	}
	return nil
}
