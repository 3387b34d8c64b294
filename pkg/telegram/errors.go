package telegram

import "errors"

var (
	// ErrInvalidIdentifier — строку нельзя разобрать как username канала.
	ErrInvalidIdentifier = errors.New("некорректная ссылка или username канала")
	// ErrChannelNotFound — username не занят или принадлежит не каналу.
	ErrChannelNotFound = errors.New("канал не найден")
	// ErrChannelPrivate — канал закрыт или недоступен.
	ErrChannelPrivate = errors.New("канал приватный или недоступен")
	// ErrUnauthorized — сессия парсера не авторизована.
	ErrUnauthorized = errors.New("сессия Telegram не авторизована")
	// ErrChannelBusy — канал уже обрабатывается.
	ErrChannelBusy = errors.New("канал уже обрабатывается")
)
