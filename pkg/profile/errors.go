package profile

import (
	"errors"
	"sort"
	"strings"
)

// ErrBusy — форма уже отправлена и ждёт ответа.
var ErrBusy = errors.New("профиль уже сохраняется")

// Errors — сообщения об ошибках по полям формы, одно сообщение на поле.
type Errors map[string]string

// Empty сообщает, что непустых сообщений нет.
func (e Errors) Empty() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Merge возвращает новые ошибки: значения other перекрывают текущие.
func (e Errors) Merge(other Errors) Errors {
	out := make(Errors, len(e)+len(other))
	for k, v := range e {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Clear убирает ошибку поля, например после его редактирования.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// FieldError — одна ошибка поля в ответе сервера.
type FieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ServerErrors — ошибки сервера: по каждому полю может быть несколько.
type ServerErrors map[string][]FieldError

// FlattenServerErrors оставляет по первому сообщению на поле.
func FlattenServerErrors(serverErrors ServerErrors) Errors {
	flat := make(Errors, len(serverErrors))
	for field, list := range serverErrors {
		if len(list) == 0 {
			continue
		}
		flat[field] = list[0].Message
	}
	return flat
}

// ValidationError — форма отклонена с ошибками по полям.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "ошибки в полях: " + strings.Join(fields, ", ")
}
