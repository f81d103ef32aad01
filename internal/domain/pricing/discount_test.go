package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del reparto proporcional de descuento.
//
// La propiedad central es la exactitud: para cualquier carrito y cualquier
// descuento, la suma de las cuotas por línea debe ser EXACTAMENTE el descuento
// de entrada, no descuento ± redondeo. La última línea absorbe el remanente.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func subtotals(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = dec(s)
	}
	return out
}

func sum(shares []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}

func TestAllocate_SumaExacta(t *testing.T) {
	cases := []struct {
		name     string
		lines    []decimal.Decimal
		discount decimal.Decimal
	}{
		{"tres líneas iguales, descuento indivisible", subtotals("100", "100", "100"), dec("100")},
		{"proporciones con redondeo", subtotals("33.33", "66.67", "99.99"), dec("10")},
		{"una sola línea", subtotals("250"), dec("30")},
		{"descuento con centavos", subtotals("19.99", "5.01", "74.50"), dec("7.77")},
		{"descuento igual al subtotal", subtotals("12.50", "12.50"), dec("25")},
		{"muchas líneas pequeñas", subtotals("1", "1", "1", "1", "1", "1", "1"), dec("0.10")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shares := pricing.Allocate(tc.lines, tc.discount)
			require.Len(t, shares, len(tc.lines))
			assert.True(t, sum(shares).Equal(tc.discount),
				"las cuotas deben sumar exactamente el descuento: %s != %s", sum(shares), tc.discount)
		})
	}
}

func TestAllocate_Proporcionalidad(t *testing.T) {
	// Línea con el doble de subtotal recibe (aprox.) el doble de descuento;
	// la exactitud la garantiza la última línea.
	shares := pricing.Allocate(subtotals("100", "200"), dec("30"))
	require.Len(t, shares, 2)
	assert.True(t, shares[0].Equal(dec("10")), "línea 1 debe recibir 10, recibió %s", shares[0])
	assert.True(t, shares[1].Equal(dec("20")), "línea 2 debe recibir 20, recibió %s", shares[1])
}

func TestAllocate_SubtotalCero_TodoCero(t *testing.T) {
	// Carrito con subtotal 0 (por ejemplo solo bonificadas): sin división por
	// cero y todas las cuotas en cero.
	shares := pricing.Allocate(subtotals("0", "0", "0"), dec("15"))
	require.Len(t, shares, 3)
	for i, s := range shares {
		assert.True(t, s.IsZero(), "cuota %d debe ser cero, fue %s", i, s)
	}
}

// Cuatro líneas iguales con descuento 0.02: el redondeo proporcional daría
// 0.01 a cada una de las tres primeras y dejaría a la última en -0.01. El
// recorte de cuotas evita el negativo sin perder la exactitud de la suma.
func TestAllocate_RedondeoNoDejaCuotaNegativa(t *testing.T) {
	shares := pricing.Allocate(subtotals("10", "10", "10", "10"), dec("0.02"))
	require.Len(t, shares, 4)
	assert.True(t, sum(shares).Equal(dec("0.02")), "la suma sigue siendo exacta")
	for i, s := range shares {
		assert.False(t, s.IsNegative(), "cuota %d no debe ser negativa, fue %s", i, s)
	}
}

func TestAllocate_CarritoVacio(t *testing.T) {
	shares := pricing.Allocate(nil, dec("15"))
	assert.Empty(t, shares)
}

func TestAllocate_DescuentoCero(t *testing.T) {
	shares := pricing.Allocate(subtotals("10", "20"), decimal.Zero)
	assert.True(t, sum(shares).IsZero())
}

// ── Conversión porcentaje <-> monto ──────────────────────────────────────────

func TestByPercentage_MontoRedondeado(t *testing.T) {
	// 10% de 270.50 = 27.05
	assert.True(t, pricing.ByPercentage(dec("270.50"), dec("10")).Equal(dec("27.05")))
	// 33% de 99.99 = 32.9967 -> 33.00
	assert.True(t, pricing.ByPercentage(dec("99.99"), dec("33")).Equal(dec("33.00")))
}

func TestByAmount_PorcentajeInverso(t *testing.T) {
	// 30 sobre 300 = 10%
	assert.True(t, pricing.ByAmount(dec("300"), dec("30")).Equal(dec("10")))
	// Subtotal cero no divide por cero
	assert.True(t, pricing.ByAmount(decimal.Zero, dec("30")).IsZero())
}

func TestByAmount_ByPercentage_IdaYVuelta(t *testing.T) {
	// Cambiar de modo de entrada no debe alterar el carrito: el monto derivado
	// del porcentaje derivado del monto original reproduce el monto (en casos
	// sin pérdida de precisión).
	subtotal := dec("400")
	amount := dec("100")
	pct := pricing.ByAmount(subtotal, amount) // 25%
	back := pricing.ByPercentage(subtotal, pct)
	assert.True(t, back.Equal(amount), "ida y vuelta: %s != %s", back, amount)
}

// ── Derivados por línea ──────────────────────────────────────────────────────

func TestFinalUnitPrice(t *testing.T) {
	// unitPrice 100, descuento de línea 30, cantidad 3 -> 90
	assert.True(t, pricing.FinalUnitPrice(dec("100"), dec("30"), 3).Equal(dec("90")))
	// cantidad cero no divide
	assert.True(t, pricing.FinalUnitPrice(dec("100"), dec("30"), 0).Equal(dec("100")))
}

func TestLossAmount(t *testing.T) {
	assert.True(t, pricing.LossAmount(dec("500"), dec("120")).Equal(dec("380")))
	assert.True(t, pricing.LossAmount(dec("500"), decimal.Zero).Equal(dec("500")))
}
