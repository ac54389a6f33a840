package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/billing-core/internal/domain"
)

// ProrationWindow periodo facturado [TermStart, TermEnd) y fecha desde la que se cobra.
type ProrationWindow struct {
	From      time.Time
	TermStart time.Time
	TermEnd   time.Time
}

// ProrationFraction días restantes / días del periodo, contando días calendario en UTC.
func ProrationFraction(w ProrationWindow) (decimal.Decimal, error) {
	start, end, from := day(w.TermStart), day(w.TermEnd), day(w.From)
	if !end.After(start) {
		return decimal.Zero, domain.NewValidationError("term_end", "debe ser posterior a term_start")
	}
	if from.Before(start) || !from.Before(end) {
		return decimal.Zero, domain.NewValidationError("from", "fuera del periodo")
	}
	termDays := daysBetween(start, end)
	remaining := daysBetween(from, end)
	if remaining == termDays {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromInt(remaining).Div(decimal.NewFromInt(termDays)), nil
}

// Prorate devuelve amount proporcional a los días restantes del periodo, redondeado.
func Prorate(amount decimal.Decimal, w ProrationWindow, precision int32) (decimal.Decimal, error) {
	f, err := ProrationFraction(w)
	if err != nil {
		return decimal.Zero, err
	}
	return Round(amount.Mul(f), precision), nil
}

func day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int64 {
	return int64(b.Sub(a).Hours() / 24)
}
