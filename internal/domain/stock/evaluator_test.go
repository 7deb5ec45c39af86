package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/stock"
)

// Clasificación: out cuando current <= 0 (incluye negativos); low cuando
// 0 < current <= min; good en el resto. Los bordes current == 0 y
// current == min son los casos que más se rompen al refactorizar.
func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		min      int64
		expected stock.Status
	}{
		{"stock negativo es out", -3, 10, stock.StatusOut},
		{"stock cero es out", 0, 10, stock.StatusOut},
		{"borde: igual al mínimo es low", 10, 10, stock.StatusLow},
		{"por debajo del mínimo es low", 5, 10, stock.StatusLow},
		{"uno por encima del mínimo es good", 11, 10, stock.StatusGood},
		{"mínimo cero con stock positivo es good", 1, 0, stock.StatusGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stock.Classify(tc.current, tc.min))
		})
	}
}

// La clasificación es pura: llamadas repetidas con la misma entrada dan lo mismo.
func TestClassify_Idempotente(t *testing.T) {
	first := stock.Classify(5, 10)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, stock.Classify(5, 10))
	}
}

// Escenario de referencia: {currentStock: 5, minStock: 10, maxStock: 50}
// → low y sugerencias [20, 30, 45, 50].
func TestSuggestQuantities_EscenarioReferencia(t *testing.T) {
	p := &entity.Product{CurrentStock: 5, MinStock: 10, MaxStock: 50}

	assert.Equal(t, stock.StatusLow, stock.ClassifyProduct(p))
	assert.Equal(t, []int64{20, 30, 45, 50}, stock.SuggestForProduct(p))
}

func TestSuggestQuantities_SinNoPositivosNiDuplicados(t *testing.T) {
	// min=0 y max=0: todos los candidatos son <= 0 → lista vacía,
	// el caller cae a entrada manual (mínimo 1).
	assert.Empty(t, stock.SuggestQuantities(5, 0, 0))

	// max-current coincide con 2*min: se deduplica conservando el orden de generación.
	// candidatos: [20, 30, 20, 60] → [20, 30, 60]
	got := stock.SuggestQuantities(40, 10, 60)
	assert.Equal(t, []int64{20, 30, 60}, got)

	// Nunca aparecen valores <= 0 aunque current > max.
	for _, q := range stock.SuggestQuantities(100, 10, 50) {
		assert.Positive(t, q)
	}
}

func TestActiveAlerts(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Arroz", CurrentStock: 0, MinStock: 10},
		{ID: "p2", Name: "Azúcar", CurrentStock: 5, MinStock: 10},
		{ID: "p3", Name: "Café", CurrentStock: 30, MinStock: 10},
	}

	alerts := stock.ActiveAlerts(products)
	assert.Len(t, alerts, 2)
	assert.Equal(t, stock.AlertOutOfStock, alerts[0].Type)
	assert.Equal(t, "p1", alerts[0].ProductID)
	assert.Equal(t, stock.AlertLowStock, alerts[1].Type)
	assert.Equal(t, "p2", alerts[1].ProductID)
}
