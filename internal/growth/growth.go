// Package growth provides pure, stateless growth calculations over
// chronological (oldest-first) value series. Out-of-domain inputs (zero
// bases, sign flips, overflow) yield nil rather than errors: an
// undefined growth figure is a normal outcome, not a failure.
package growth

import (
	"math"

	"github.com/finbrook/edgarscope/pkg/models"
)

// Trend classifications produced by Signal.
const (
	TrendAccelerating = "accelerating"
	TrendDecelerating = "decelerating"
	TrendStable       = "stable"
)

// YoYChangePct returns the percentage change from prior to current,
// rounded to one decimal. It is nil when prior is zero or when the two
// values have strictly opposite signs: a loss-to-profit or
// profit-to-loss transition has no meaningful percentage.
func YoYChangePct(current, prior float64) *float64 {
	if prior == 0 {
		return nil
	}
	if (current > 0 && prior < 0) || (current < 0 && prior > 0) {
		return nil
	}
	pct := round1((current - prior) / math.Abs(prior) * 100)
	return &pct
}

// CAGR returns the compound annual growth rate from start to end over
// the given number of years, as a percentage rounded to one decimal. It
// is nil unless years and both endpoints are positive, or when the
// computed rate is not finite (extreme magnitude ratios overflow the
// exponentiation).
func CAGR(start, end float64, years int) *float64 {
	if years <= 0 || start <= 0 || end <= 0 {
		return nil
	}
	rate := (math.Pow(end/start, 1/float64(years)) - 1) * 100
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return nil
	}
	rate = round1(rate)
	return &rate
}

// Growth computes year-over-year changes and CAGR over a chronological
// DataPoint series. The result has one YoY entry per point, the first
// always nil. CAGR spans first to last point and requires at least two
// intervening years.
func Growth(points []models.DataPoint) models.Calculations {
	calc := models.Calculations{
		YoYChanges: make([]models.YoYChange, 0, len(points)),
	}
	for i, p := range points {
		change := models.YoYChange{Year: p.FiscalYear}
		if i > 0 {
			change.ChangePct = YoYChangePct(p.Value, points[i-1].Value)
		}
		calc.YoYChanges = append(calc.YoYChanges, change)
	}

	if len(points) > 0 {
		calc.CAGRYears = len(points) - 1
	}
	if calc.CAGRYears >= 2 {
		calc.CAGR = CAGR(points[0].Value, points[len(points)-1].Value, calc.CAGRYears)
	}
	return calc
}

// Signal classifies whether growth is accelerating, decelerating, or
// stable by comparing average period growth in the second half of the
// series against the first half. It returns "" when fewer than four
// values are given or when either half has no eligible sample: a period
// growth sample requires both adjacent values strictly positive, and is
// assigned to the half containing the later index. The halves must
// differ by more than two percentage points to leave "stable".
func Signal(values []float64) string {
	if len(values) < 4 {
		return ""
	}

	mid := len(values) / 2
	var firstHalf, secondHalf []float64
	for i := 1; i < len(values); i++ {
		prior, current := values[i-1], values[i]
		if prior <= 0 || current <= 0 {
			continue
		}
		pct := (current - prior) / prior * 100
		if i >= mid {
			secondHalf = append(secondHalf, pct)
		} else {
			firstHalf = append(firstHalf, pct)
		}
	}
	if len(firstHalf) == 0 || len(secondHalf) == 0 {
		return ""
	}

	delta := mean(secondHalf) - mean(firstHalf)
	switch {
	case delta > 2:
		return TrendAccelerating
	case delta < -2:
		return TrendDecelerating
	default:
		return TrendStable
	}
}

func mean(samples []float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
