package profile

import (
	"context"
	"errors"
)

// State — состояние отправки формы.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateSaved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateSaved:
		return "saved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Saver сохраняет профиль. Ошибки полей возвращаются как *ValidationError.
type Saver interface {
	SaveProfile(ctx context.Context, username string, f Form) error
}

// Editor держит значения формы, ошибки полей и состояние отправки.
// Не предназначен для одновременного использования из нескольких горутин.
type Editor struct {
	Username string
	Form     Form
	Errors   Errors
	State    State
}

// NewEditor создаёт редактор с начальными значениями формы.
func NewEditor(username string, f Form) *Editor {
	return &Editor{Username: username, Form: f, Errors: Errors{}}
}

// Change меняет поле и снимает с него ошибку.
func (e *Editor) Change(field, value string) {
	e.Form.Set(field, value)
	e.Errors.Clear(field)
}

// Submit проверяет форму и передаёт её saver.
// При ошибках проверки saver не вызывается, состояние остаётся Idle.
func (e *Editor) Submit(ctx context.Context, saver Saver) error {
	if e.State == StateProcessing {
		return ErrBusy
	}
	if errs := Validate(e.Form); !errs.Empty() {
		e.Errors = e.Errors.Merge(errs)
		return &ValidationError{Fields: errs}
	}

	e.State = StateProcessing
	err := saver.SaveProfile(ctx, e.Username, e.Form.Trimmed())
	if err != nil {
		e.State = StateFailed
		var verr *ValidationError
		if errors.As(err, &verr) {
			e.Errors = e.Errors.Merge(verr.Fields)
		}
		return err
	}
	e.Form = e.Form.Trimmed()
	e.Errors = Errors{}
	e.State = StateSaved
	return nil
}
