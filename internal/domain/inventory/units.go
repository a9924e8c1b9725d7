package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

type unitPair struct {
	from, to entity.Unit
}

var thousand = decimal.NewFromInt(1000)

// conversions factor multiplicativo from -> to.
var conversions = map[unitPair]decimal.Decimal{
	{entity.UnitML, entity.UnitLiters}: decimal.NewFromInt(1).Div(thousand),
	{entity.UnitLiters, entity.UnitML}: thousand,
}

var aliases = map[string]entity.Unit{
	"g":        entity.UnitGrams,
	"grama":    entity.UnitGrams,
	"gramas":   entity.UnitGrams,
	"l":        entity.UnitLiters,
	"litro":    entity.UnitLiters,
	"litros":   entity.UnitLiters,
	"ml":       entity.UnitML,
	"un":       entity.UnitUnits,
	"unidade":  entity.UnitUnits,
	"unidades": entity.UnitUnits,
	"folha":    entity.UnitSheets,
	"folhas":   entity.UnitSheets,
}

// NormalizeUnit resuelve abreviaturas y plurales ("g" -> gramas, "L" -> litros).
func NormalizeUnit(u entity.Unit) entity.Unit {
	if n, ok := aliases[strings.ToLower(strings.TrimSpace(string(u)))]; ok {
		return n
	}
	return u
}

// Convert lleva qty de la unidad from a la unidad to.
// ok=false cuando el par no está en la tabla; qty vuelve sin cambios.
func Convert(qty decimal.Decimal, from, to entity.Unit) (decimal.Decimal, bool) {
	from, to = NormalizeUnit(from), NormalizeUnit(to)
	if from == to || from == "" || to == "" {
		return qty, true
	}
	f, ok := conversions[unitPair{from, to}]
	if !ok {
		return qty, false
	}
	return qty.Mul(f), true
}
