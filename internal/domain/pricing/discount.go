package pricing

import "github.com/shopspring/decimal"

// Reparto de un descuento de carrito entre las líneas, proporcional al
// subtotal de cada una. Las cuotas se redondean a 2 decimales y la ÚLTIMA
// línea recibe el remanente exacto, de modo que la suma de cuotas es siempre
// igual al descuento de entrada, sin deriva de redondeo.

var oneHundred = decimal.NewFromInt(100)

// Allocate reparte totalDiscount entre las líneas con subtotales lineSubtotals.
// Devuelve una lista del mismo largo y en el mismo orden, cuya suma es
// exactamente totalDiscount. Si el subtotal del carrito es cero, todas las
// cuotas son cero (sin división por cero).
func Allocate(lineSubtotals []decimal.Decimal, totalDiscount decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(lineSubtotals))
	if len(lineSubtotals) == 0 {
		return shares
	}

	cartSubtotal := decimal.Zero
	for _, s := range lineSubtotals {
		cartSubtotal = cartSubtotal.Add(s)
	}
	if cartSubtotal.IsZero() {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		return shares
	}

	assigned := decimal.Zero
	for i, s := range lineSubtotals {
		if i == len(lineSubtotals)-1 {
			// El remanente exacto absorbe todo el error de redondeo acumulado.
			shares[i] = totalDiscount.Sub(assigned)
			break
		}
		share := totalDiscount.Mul(s).Div(cartSubtotal).Round(2)
		// El redondeo hacia arriba puede sobregirar lo asignado (cuotas de
		// 0.005 en montos chicos); se recorta para que el remanente de la
		// última línea nunca salga negativo.
		if remaining := totalDiscount.Sub(assigned); share.GreaterThan(remaining) {
			share = remaining
		}
		shares[i] = share
		assigned = assigned.Add(share)
	}
	return shares
}

// ByPercentage convierte un porcentaje de descuento en monto sobre el subtotal.
func ByPercentage(subtotal, percentage decimal.Decimal) decimal.Decimal {
	return percentage.Div(oneHundred).Mul(subtotal).Round(2)
}

// ByAmount convierte un monto de descuento en porcentaje sobre el subtotal.
// Es la inversa de ByPercentage; cambiar de modo no altera el carrito.
func ByAmount(subtotal, amount decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return amount.Div(subtotal).Mul(oneHundred).Round(2)
}

// FinalUnitPrice es el precio unitario efectivo tras repartir el descuento de
// la línea entre sus unidades.
func FinalUnitPrice(unitPrice, lineDiscount decimal.Decimal, quantity int64) decimal.Decimal {
	if quantity <= 0 {
		return unitPrice
	}
	return unitPrice.Sub(lineDiscount.Div(decimal.NewFromInt(quantity))).Round(2)
}

// LossAmount es la pérdida contable de una baja: valor original menos lo
// recuperado (venta de salvamento, nota crédito del proveedor, etc.).
func LossAmount(originalValue, recoveredValue decimal.Decimal) decimal.Decimal {
	return originalValue.Sub(recoveredValue)
}
