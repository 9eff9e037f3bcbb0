package models

// YoYChange is one year's change relative to the prior year. ChangePct is
// nil when the change is undefined (no prior year, zero base, or a
// sign flip between the two values).
type YoYChange struct {
	Year      int      `json:"year"`
	ChangePct *float64 `json:"change_pct"`
}

// Calculations holds the growth figures computed over a chronological
// DataPoint series. CAGR is nil when fewer than three points are
// available or when the endpoint values make it undefined.
type Calculations struct {
	YoYChanges []YoYChange `json:"yoy_changes"`
	CAGR       *float64    `json:"cagr"`
	CAGRYears  int         `json:"cagr_years"`
}
