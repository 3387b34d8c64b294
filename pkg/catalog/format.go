package catalog

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	suffixMillions  = " млн"
	suffixThousands = " тыс."
	suffixSubs      = " подписчиков"
)

// FormatCountShort сокращает число для плиток каталога.
//
//	>= 1 000 000        -> "8.6 млн"  (один знак, ".0" отбрасывается)
//	10 000 .. 999 999   -> "185 тыс." (целые тысячи)
//	1 000 .. 9 999      -> "1.5 тыс." (один знак, ".0" отбрасывается)
//	< 1 000             -> "999"
//
// Целое округление во втором диапазоне и дробное в третьем расходятся намеренно:
// так уже выглядят опубликованные страницы. Для отрицательных n возвращается
// *InvalidArgumentError.
func FormatCountShort(n int64) (string, error) {
	switch {
	case n < 0:
		return "", &InvalidArgumentError{Name: "count", Value: n}
	case n >= 1_000_000:
		return oneDecimal(float64(n)/1_000_000) + suffixMillions, nil
	case n >= 10_000:
		return strconv.FormatFloat(math.Round(float64(n)/1_000), 'f', 0, 64) + suffixThousands, nil
	case n >= 1_000:
		return oneDecimal(float64(n)/1_000) + suffixThousands, nil
	default:
		return strconv.FormatInt(n, 10), nil
	}
}

// oneDecimal округляет x >= 0 до десятых половиной вверх по точному двоичному
// значению x и отбрасывает ".0". strconv округляет половину к чётному,
// поэтому знаки берутся из точной десятичной записи.
func oneDecimal(x float64) string {
	exact := strconv.FormatFloat(x, 'f', 64, 64)
	dot := strings.IndexByte(exact, '.')
	whole, _ := strconv.ParseInt(exact[:dot], 10, 64)
	tenths := whole*10 + int64(exact[dot+1]-'0')
	if exact[dot+2] >= '5' {
		tenths++
	}
	if tenths%10 == 0 {
		return strconv.FormatInt(tenths/10, 10)
	}
	return strconv.FormatInt(tenths/10, 10) + "." + strconv.FormatInt(tenths%10, 10)
}

// FormatCountFull печатает число с русской группировкой разрядов: "8 550 929".
func FormatCountFull(n int64) string {
	return message.NewPrinter(language.Russian).Sprintf("%d", n)
}

// SubscribersLabel — подпись под названием канала на карточке.
func SubscribersLabel(n int64) string {
	return FormatCountFull(n) + suffixSubs
}
