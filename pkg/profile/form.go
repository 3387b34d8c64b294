package profile

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"tgcatalog/models"
)

// Поля формы профиля.
const (
	FieldFirstName = "first_name"
	FieldEmail     = "email"
	FieldCompany   = "company"
)

const (
	msgFirstNameRequired = "Имя обязательно"
	msgEmailRequired     = "Email обязателен"
	msgEmailInvalid      = "Введите корректный email"
)

var validate = validator.New()

// Form — значения формы «Информация о профиле».
type Form struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
}

// FormFromUser заполняет форму текущими данными пользователя.
func FormFromUser(u models.User) Form {
	return Form{FirstName: u.FirstName, Email: u.Email, Company: u.Company}
}

// Trimmed возвращает форму без пробелов по краям значений.
func (f Form) Trimmed() Form {
	return Form{
		FirstName: strings.TrimSpace(f.FirstName),
		Email:     strings.TrimSpace(f.Email),
		Company:   strings.TrimSpace(f.Company),
	}
}

// Set меняет значение поля по имени. Неизвестные поля игнорируются.
func (f *Form) Set(field, value string) {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldEmail:
		f.Email = value
	case FieldCompany:
		f.Company = value
	}
}

// Validate проверяет форму до отправки на сервер.
func Validate(f Form) Errors {
	errs := Errors{}
	f = f.Trimmed()
	if f.FirstName == "" {
		errs[FieldFirstName] = msgFirstNameRequired
	}
	switch {
	case f.Email == "":
		errs[FieldEmail] = msgEmailRequired
	case validate.Var(f.Email, "email") != nil:
		errs[FieldEmail] = msgEmailInvalid
	}
	return errs
}
