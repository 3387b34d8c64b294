package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"tgcatalog/models"
)

// Filter — значения селектора страны и строки поиска.
// Пустое поле не ограничивает выборку.
type Filter struct {
	Country string
	Query   string
}

// FilterChannels оставляет каналы выбранной страны, в названии которых
// встречается строка поиска без учёта регистра. Порядок сохраняется.
func FilterChannels(channels []models.Channel, f Filter) []models.Channel {
	query := strings.TrimSpace(f.Query)
	if f.Country == "" && query == "" {
		return append([]models.Channel(nil), channels...)
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.Channel, 0, len(channels))
	for _, ch := range channels {
		if f.Country != "" && ch.Country != f.Country {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(ch.Name), needle) {
			continue
		}
		out = append(out, ch)
	}
	return out
}
