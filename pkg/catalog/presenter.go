package catalog

import "tgcatalog/models"

// Viewport — класс ширины экрана, определяемый вызывающей стороной.
type Viewport string

const (
	ViewportMobile  Viewport = "mobile"
	ViewportTablet  Viewport = "tablet"
	ViewportDesktop Viewport = "desktop"
)

// Границы классов ширины, как в вёрстке каталога.
const (
	mobileMaxWidth = 767
	tabletMaxWidth = 1023
)

// DisplayLimits — сколько элементов каждого блока показывать на экране.
type DisplayLimits struct {
	// Categories — плитки блока «Все категории».
	Categories int
	// Verified — карточки блока «Верифицированные подборки».
	Verified int
	// GroupMembers — карточки в секции одной категории.
	GroupMembers int
}

var displayLimits = map[Viewport]DisplayLimits{
	ViewportMobile:  {Categories: 3, Verified: 2, GroupMembers: 2},
	ViewportTablet:  {Categories: 12, Verified: 4, GroupMembers: 3},
	ViewportDesktop: {Categories: 12, Verified: 6, GroupMembers: 4},
}

// ParseViewport разбирает строковое значение класса экрана.
// Пустая строка означает desktop.
func ParseViewport(s string) (Viewport, error) {
	if s == "" {
		return ViewportDesktop, nil
	}
	v := Viewport(s)
	if _, ok := displayLimits[v]; !ok {
		return "", &InvalidArgumentError{Name: "viewport", Value: s}
	}
	return v, nil
}

// ViewportForWidth классифицирует ширину экрана в пикселях.
func ViewportForWidth(px int) Viewport {
	switch {
	case px <= mobileMaxWidth:
		return ViewportMobile
	case px <= tabletMaxWidth:
		return ViewportTablet
	default:
		return ViewportDesktop
	}
}

// LimitsFor возвращает лимиты показа для класса экрана.
func LimitsFor(v Viewport) (DisplayLimits, error) {
	l, ok := displayLimits[v]
	if !ok {
		return DisplayLimits{}, &InvalidArgumentError{Name: "viewport", Value: string(v)}
	}
	return l, nil
}

// SelectCategoriesForDisplay оставляет первые категории: 3 на mobile, 12 на tablet и desktop.
func SelectCategoriesForDisplay(entries []CountEntry, v Viewport) ([]CountEntry, error) {
	l, err := LimitsFor(v)
	if err != nil {
		return nil, err
	}
	return takePrefix(entries, l.Categories), nil
}

// SelectVerifiedForDisplay оставляет верифицированные каналы в исходном порядке
// и берёт первые 2, 4 или 6 в зависимости от класса экрана.
func SelectVerifiedForDisplay(channels []models.Channel, v Viewport) ([]models.Channel, error) {
	l, err := LimitsFor(v)
	if err != nil {
		return nil, err
	}
	verified := make([]models.Channel, 0, l.Verified)
	for _, ch := range channels {
		if len(verified) == l.Verified {
			break
		}
		if ch.Verified {
			verified = append(verified, ch)
		}
	}
	return verified, nil
}

// SelectGroupMembersForDisplay обрезает каналы одной категории: 2, 3 или 4.
func SelectGroupMembersForDisplay(members []models.Channel, v Viewport) ([]models.Channel, error) {
	l, err := LimitsFor(v)
	if err != nil {
		return nil, err
	}
	return takePrefix(members, l.GroupMembers), nil
}

// takePrefix копирует первые limit элементов, чтобы результат не делил массив со входом.
func takePrefix[T any](items []T, limit int) []T {
	n := min(limit, len(items))
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
