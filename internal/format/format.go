// Package format renders monetary values as locale-specific currency
// text: Venezuelan conventions for bolívares, US conventions for
// dollars. It operates on display-rounded numbers only; nothing here
// feeds back into cart arithmetic.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

var (
	vesPrinter = message.NewPrinter(language.MustParse("es-VE"))
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
)

// VES renders an amount as bolívares, e.g. "Bs. 1.234,50".
func VES(amount float64) string {
	return vesPrinter.Sprintf("Bs. %v", fixed(amount))
}

// USD renders an amount as dollars, e.g. "$ 1,234.50".
func USD(amount float64) string {
	return usdPrinter.Sprintf("$ %v", fixed(amount))
}

// DecimalVES renders a decimal amount as bolívares.
func DecimalVES(amount decimal.Decimal) string {
	return VES(domain.DisplayValue(amount))
}

// DecimalUSD renders a decimal amount as dollars.
func DecimalUSD(amount decimal.Decimal) string {
	return USD(domain.DisplayValue(amount))
}

// Rate renders an exchange rate in Venezuelan number format.
func Rate(rate decimal.Decimal) string {
	return vesPrinter.Sprintf("%v", fixed(domain.DisplayValue(rate)))
}

func fixed(amount float64) number.Formatter {
	return number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	)
}
