package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billing-core/internal/domain"
	"github.com/jhoicas/billing-core/internal/domain/pricing"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 12, 30, 0, 0, time.UTC)
}

func TestProrate(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		window   pricing.ProrationWindow
		expected string
	}{
		{
			name:     "periodo completo",
			amount:   "30.00",
			window:   pricing.ProrationWindow{From: date(2026, 4, 1), TermStart: date(2026, 4, 1), TermEnd: date(2026, 5, 1)},
			expected: "30.00",
		},
		{
			name:     "medio mes de abril",
			amount:   "30.00",
			window:   pricing.ProrationWindow{From: date(2026, 4, 16), TermStart: date(2026, 4, 1), TermEnd: date(2026, 5, 1)},
			expected: "15.00",
		},
		{
			name:     "un día de enero",
			amount:   "31.00",
			window:   pricing.ProrationWindow{From: date(2026, 1, 31), TermStart: date(2026, 1, 1), TermEnd: date(2026, 2, 1)},
			expected: "1.00",
		},
		{
			name:     "anual con redondeo",
			amount:   "100.00",
			window:   pricing.ProrationWindow{From: date(2026, 7, 1), TermStart: date(2026, 1, 1), TermEnd: date(2027, 1, 1)},
			expected: "50.41", // 184 / 365
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Prorate(d(tt.amount), tt.window, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestProrate_FueraDelPeriodo(t *testing.T) {
	w := pricing.ProrationWindow{From: date(2026, 5, 1), TermStart: date(2026, 4, 1), TermEnd: date(2026, 5, 1)}
	_, err := pricing.Prorate(d("30"), w, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)

	w = pricing.ProrationWindow{From: date(2026, 3, 31), TermStart: date(2026, 4, 1), TermEnd: date(2026, 5, 1)}
	_, err = pricing.Prorate(d("30"), w, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProrate_PeriodoInvalido(t *testing.T) {
	w := pricing.ProrationWindow{From: date(2026, 4, 1), TermStart: date(2026, 4, 1), TermEnd: date(2026, 4, 1)}
	_, err := pricing.Prorate(d("30"), w, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCurrencyPrecision(t *testing.T) {
	usd, err := pricing.CurrencyPrecision("USD")
	require.NoError(t, err)
	assert.Equal(t, int32(2), usd)

	jpy, err := pricing.CurrencyPrecision("JPY")
	require.NoError(t, err)
	assert.Equal(t, int32(0), jpy)

	def, err := pricing.CurrencyPrecision("")
	require.NoError(t, err)
	assert.Equal(t, pricing.DefaultPrecision, def)

	_, err = pricing.CurrencyPrecision("XXZ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRound_MitadLejosDeCero(t *testing.T) {
	assert.Equal(t, "0.13", pricing.Round(d("0.125"), 2).String())
	assert.Equal(t, "-0.13", pricing.Round(d("-0.125"), 2).String())
	assert.Equal(t, "8.87", pricing.Round(d("8.8749"), 2).String())
}
