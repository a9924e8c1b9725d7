package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado al recibir una compra.
// NuevoPrecio = ((SaldoActual * PrecioActual) + (CantEntrada * CostoEntrada)) / (SaldoActual + CantEntrada)
func CostCalculator(saldoActual, precioActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := saldoActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := saldoActual.Mul(precioActual).Add(cantEntrada.Mul(costoEntrada))
	return num.DivRound(sum, 4)
}
