package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntry — во входном списке есть канал без категории.
	ErrInvalidEntry = errors.New("некорректная запись каталога")
	// ErrInvalidArgument — аргумент вне допустимой области (отрицательное число, неизвестный viewport).
	ErrInvalidArgument = errors.New("некорректный аргумент")
	// ErrCategoryNotFound — запрошенной категории нет в каталоге.
	ErrCategoryNotFound = errors.New("категория не найдена")
)

// InvalidEntryError описывает канал без категории.
// Такой канал не попадает ни в какую группу, вся операция завершается ошибкой.
type InvalidEntryError struct {
	Index int
	ID    int64
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("канал %d (позиция %d): не указана категория", e.ID, e.Index)
}

func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

// InvalidArgumentError описывает недопустимое значение аргумента.
type InvalidArgumentError struct {
	Name  string
	Value any
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: недопустимое значение %v", e.Name, e.Value)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }
