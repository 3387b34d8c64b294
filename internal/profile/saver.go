package profile

import (
	"context"
	"errors"

	"tgcatalog/models"
	"tgcatalog/pkg/profile"
	"tgcatalog/pkg/storage"
)

const msgEmailTaken = "Пользователь с таким email уже существует"

// Store — операции хранилища, нужные профилю.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, username, firstName, email, company string) (*models.User, error)
}

// storeSaver сохраняет форму в БД и переводит конфликт email в ошибку поля.
type storeSaver struct {
	store Store
}

func (s storeSaver) SaveProfile(ctx context.Context, username string, f profile.Form) error {
	_, err := s.store.UpdateUserProfile(ctx, username, f.FirstName, f.Email, f.Company)
	if errors.Is(err, storage.ErrEmailTaken) {
		return &profile.ValidationError{Fields: profile.FlattenServerErrors(profile.ServerErrors{
			profile.FieldEmail: {{Message: msgEmailTaken, Code: "unique"}},
		})}
	}
	return err
}
