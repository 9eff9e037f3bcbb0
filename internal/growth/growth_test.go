package growth

import (
	"testing"

	"github.com/finbrook/edgarscope/pkg/models"
)

func assertPct(t *testing.T, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %.1f, got nil", want)
	}
	if *got != want {
		t.Errorf("expected %.1f, got %.1f", want, *got)
	}
}

func assertNil(t *testing.T, got *float64) {
	t.Helper()
	if got != nil {
		t.Errorf("expected nil, got %.1f", *got)
	}
}

func TestYoYChangePct(t *testing.T) {
	tests := []struct {
		name           string
		current, prior float64
		want           *float64
	}{
		{"simple growth", 150, 100, f(50.0)},
		{"decline", 75, 100, f(-25.0)},
		{"zero prior undefined", 100, 0, nil},
		{"loss to profit undefined", 100, -50, nil},
		{"profit to loss undefined", -50, 100, nil},
		{"shrinking loss", -50, -100, f(50.0)},
		{"rounded to one decimal", 110, 120, f(-8.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YoYChangePct(tt.current, tt.prior)
			if tt.want == nil {
				assertNil(t, got)
			} else {
				assertPct(t, got, *tt.want)
			}
		})
	}
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		years      int
		want       *float64
	}{
		{"doubling over four years", 100, 200, 4, f(18.9)},
		{"negative end undefined", 100, -50, 1, nil},
		{"negative start undefined", -100, 200, 4, nil},
		{"zero years undefined", 100, 200, 0, nil},
		{"flat series", 100, 100, 5, f(0.0)},
		{"extreme ratio overflows to nil", 1e-300, 1e300, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGR(tt.start, tt.end, tt.years)
			if tt.want == nil {
				assertNil(t, got)
			} else {
				assertPct(t, got, *tt.want)
			}
		})
	}
}

func TestGrowth(t *testing.T) {
	points := series(2019, 100, 120, 140, 170, 200)

	calc := Growth(points)
	if len(calc.YoYChanges) != 5 {
		t.Fatalf("expected 5 YoY entries, got %d", len(calc.YoYChanges))
	}
	assertNil(t, calc.YoYChanges[0].ChangePct)
	assertPct(t, calc.YoYChanges[1].ChangePct, 20.0)
	assertPct(t, calc.YoYChanges[2].ChangePct, 16.7)
	assertPct(t, calc.YoYChanges[3].ChangePct, 21.4)
	assertPct(t, calc.YoYChanges[4].ChangePct, 17.6)

	if calc.YoYChanges[0].Year != 2019 || calc.YoYChanges[4].Year != 2023 {
		t.Errorf("YoY years out of order: %v", calc.YoYChanges)
	}
	if calc.CAGRYears != 4 {
		t.Errorf("expected CAGRYears 4, got %d", calc.CAGRYears)
	}
	assertPct(t, calc.CAGR, 18.9)
}

func TestGrowthShortSeries(t *testing.T) {
	single := Growth(series(2023, 100))
	if single.CAGRYears != 0 || single.CAGR != nil {
		t.Errorf("single point must have no CAGR, got years=%d", single.CAGRYears)
	}

	pair := Growth(series(2022, 100, 150))
	if pair.CAGRYears != 1 {
		t.Errorf("expected CAGRYears 1, got %d", pair.CAGRYears)
	}
	assertNil(t, pair.CAGR) // one intervening year is not enough
	assertPct(t, pair.YoYChanges[1].ChangePct, 50.0)

	empty := Growth(nil)
	if len(empty.YoYChanges) != 0 || empty.CAGR != nil {
		t.Error("empty series must yield empty calculations")
	}
}

func TestSignal(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"steady growth", []float64{100, 120, 140, 170, 200}, TrendStable},
		{"picking up", []float64{100, 102, 104, 130, 170}, TrendAccelerating},
		{"slowing down", []float64{100, 130, 169, 180, 185}, TrendDecelerating},
		{"too few values", []float64{100, 120, 150}, ""},
		{"first half ineligible", []float64{-5, -4, 100, 110}, ""},
		{"all non-positive", []float64{-1, -2, -3, -4}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Signal(tt.values); got != tt.want {
				t.Errorf("Signal(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func f(v float64) *float64 { return &v }

func series(startYear int, values ...float64) []models.DataPoint {
	points := make([]models.DataPoint, 0, len(values))
	for i, v := range values {
		points = append(points, models.DataPoint{FiscalYear: startYear + i, Value: v})
	}
	return points
}
