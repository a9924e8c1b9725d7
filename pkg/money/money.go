// Package money formatea valores monetarios en reais (pt-BR).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL devuelve el valor como "R$ 1.234,56".
func BRL(v decimal.Decimal) string {
	return "R$ " + Plain(v)
}

// Plain devuelve el valor con separadores pt-BR y dos decimales, sin símbolo.
func Plain(v decimal.Decimal) string {
	return printer.Sprintf("%v", number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

// Quantity formatea cantidades de stock (hasta 3 decimales, sin ceros sobrantes).
func Quantity(v decimal.Decimal) string {
	return printer.Sprintf("%v", number.Decimal(v.Round(3).InexactFloat64(), number.MaxFractionDigits(3)))
}
