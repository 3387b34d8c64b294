package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrEmailTaken — email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email уже используется")
)

// uniqueViolation — код ошибки PostgreSQL при нарушении уникальности.
const uniqueViolation = "23505"

type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}

// Open подключается к PostgreSQL и проверяет соединение.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return NewDB(conn), nil
}

// Migrate создаёт недостающие таблицы.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.Conn.ExecContext(ctx, schema)
	return err
}

func (db *DB) Close() error {
	return db.Conn.Close()
}
