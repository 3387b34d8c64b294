package catalog

// DefaultCategories — список категорий, доступных при добавлении канала в парсер.
// По нему создаются автоподборки, даже если в категории ещё нет каналов.
var DefaultCategories = []string{
	"Новости и СМИ",
	"Экономика",
	"Политика",
	"Финансы",
	"Видео и фильмы",
	"Картинки и фото",
	"Здоровье",
	"Лингвистика",
	"Технологии",
	"Образование",
	"Бизнес и стартапы",
	"Криптовалюты",
	"Маркетинг, PR, реклама",
	"Психология",
	"Путешествия",
	"Музыка",
	"Юмор и развлечения",
	"Спорт",
	"Блоги",
	"Другое",
}
