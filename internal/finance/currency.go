package finance

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency валюта для отображения сумм
type Currency struct {
	Symbol string
	Code   string
}

// DefaultCurrency используется, когда валюту определить не удалось
var DefaultCurrency = Currency{Symbol: "$", Code: "USD"}

// символы известных валют, ключ ISO код
var symbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"JPY": "¥",
	"INR": "₹",
	"CAD": "C$",
	"AUD": "A$",
	"CNY": "¥",
	"KRW": "₩",
	"BRL": "R$",
	"MXN": "$",
	"RUB": "₽",
	"ZAR": "R",
	"SGD": "S$",
	"CHF": "CHF",
}

// CurrencyForLocale определяет валюту по локали вида "en-GB", "de_DE.UTF-8" или "fr".
// Для тега без региона регион выводится из языка.
func CurrencyForLocale(locale string) Currency {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return DefaultCurrency
	}

	region, _ := tag.Region()
	unit, ok := currency.FromRegion(region)
	if !ok {
		return DefaultCurrency
	}

	return CurrencyForCode(unit.String())
}

// CurrencyForCode возвращает валюту по ISO коду; неизвестный код дает DefaultCurrency
func CurrencyForCode(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	symbol, ok := symbols[code]
	if !ok {
		return DefaultCurrency
	}
	return Currency{Symbol: symbol, Code: code}
}

// Format символ и сумма с двумя знаками и разделителем тысяч;
// отрицательные суммы получают минус перед символом
func (c Currency) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	digits := message.NewPrinter(language.English).Sprint(number.Decimal(amount, number.Scale(2)))
	return sign + c.Symbol + digits
}

func (c Currency) String() string {
	return c.Code
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "", "C", "POSIX":
		return "en-US"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
