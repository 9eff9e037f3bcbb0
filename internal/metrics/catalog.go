// Package metrics defines the catalog of financial metrics the
// normalization pipeline can produce. Each metric maps to an ordered
// list of candidate XBRL concepts because companies tag the same
// economic fact under different concepts across taxonomy vintages.
package metrics

import (
	"fmt"
	"sort"
)

// UnitKind is the unit family a metric is reported in.
type UnitKind string

const (
	UnitCurrency UnitKind = "currency"
	UnitShares   UnitKind = "shares"
	UnitPerShare UnitKind = "per_share"
)

// Code returns the unit key used inside XBRL company-facts documents.
func (u UnitKind) Code() string {
	switch u {
	case UnitShares:
		return "shares"
	case UnitPerShare:
		return "USD/shares"
	default:
		return "USD"
	}
}

// AggregationKind describes how a metric accumulates over a fiscal year.
// Duration metrics (revenue, income) sum over the year and only a full-
// year "FY" observation is annual; balance-sheet metrics are measured at
// period end, so a Q4 instant is equally valid.
type AggregationKind string

const (
	AggSum         AggregationKind = "sum"
	AggEndOfPeriod AggregationKind = "end_of_period"
)

// Candidate is one XBRL concept that may report a metric. Lower priority
// numbers are preferred when candidates tie on data recency.
type Candidate struct {
	Taxonomy string `json:"taxonomy"`
	Concept  string `json:"concept"`
	Priority int    `json:"priority"`
}

// Definition describes one metric in the catalog.
type Definition struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Candidates  []Candidate     `json:"candidates"`
	Unit        UnitKind        `json:"unit_kind"`
	Aggregation AggregationKind `json:"aggregation_kind"`
}

// ErrUnknownMetric is returned when a metric ID is not in the catalog.
type ErrUnknownMetric struct {
	ID string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("unknown metric %q", e.ID)
}

var catalog = map[string]*Definition{
	"revenue": {
		ID:    "revenue",
		Label: "Revenue",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "RevenueFromContractWithCustomerExcludingAssessedTax", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "Revenues", Priority: 2},
			{Taxonomy: "us-gaap", Concept: "SalesRevenueNet", Priority: 3},
		},
		Unit:        UnitCurrency,
		Aggregation: AggSum,
	},
	"net_income": {
		ID:    "net_income",
		Label: "Net Income",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "NetIncomeLoss", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "ProfitLoss", Priority: 2},
		},
		Unit:        UnitCurrency,
		Aggregation: AggSum,
	},
	"eps_diluted": {
		ID:    "eps_diluted",
		Label: "Diluted EPS",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "EarningsPerShareDiluted", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "EarningsPerShareBasicAndDiluted", Priority: 2},
		},
		Unit:        UnitPerShare,
		Aggregation: AggSum,
	},
	"gross_profit": {
		ID:    "gross_profit",
		Label: "Gross Profit",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "GrossProfit", Priority: 1},
		},
		Unit:        UnitCurrency,
		Aggregation: AggSum,
	},
	"operating_income": {
		ID:    "operating_income",
		Label: "Operating Income",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "OperatingIncomeLoss", Priority: 1},
		},
		Unit:        UnitCurrency,
		Aggregation: AggSum,
	},
	"operating_cash_flow": {
		ID:    "operating_cash_flow",
		Label: "Operating Cash Flow",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "NetCashProvidedByUsedInOperatingActivities", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "NetCashProvidedByUsedInOperatingActivitiesContinuingOperations", Priority: 2},
		},
		Unit:        UnitCurrency,
		Aggregation: AggSum,
	},
	"total_assets": {
		ID:    "total_assets",
		Label: "Total Assets",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "Assets", Priority: 1},
		},
		Unit:        UnitCurrency,
		Aggregation: AggEndOfPeriod,
	},
	"stockholders_equity": {
		ID:    "stockholders_equity",
		Label: "Stockholders' Equity",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "StockholdersEquity", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest", Priority: 2},
		},
		Unit:        UnitCurrency,
		Aggregation: AggEndOfPeriod,
	},
	"cash": {
		ID:    "cash",
		Label: "Cash & Equivalents",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "CashAndCashEquivalentsAtCarryingValue", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents", Priority: 2},
		},
		Unit:        UnitCurrency,
		Aggregation: AggEndOfPeriod,
	},
	"long_term_debt": {
		ID:    "long_term_debt",
		Label: "Long-Term Debt",
		Candidates: []Candidate{
			{Taxonomy: "us-gaap", Concept: "LongTermDebtNoncurrent", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "LongTermDebt", Priority: 2},
		},
		Unit:        UnitCurrency,
		Aggregation: AggEndOfPeriod,
	},
	"shares_outstanding": {
		ID:    "shares_outstanding",
		Label: "Shares Outstanding",
		Candidates: []Candidate{
			{Taxonomy: "dei", Concept: "EntityCommonStockSharesOutstanding", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "CommonStockSharesOutstanding", Priority: 2},
		},
		Unit:        UnitShares,
		Aggregation: AggEndOfPeriod,
	},
}

// Lookup returns the definition for a metric ID.
func Lookup(id string) (*Definition, error) {
	def, ok := catalog[id]
	if !ok {
		return nil, &ErrUnknownMetric{ID: id}
	}
	return def, nil
}

// IDs returns all catalog metric IDs, sorted.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every definition, sorted by ID.
func All() []*Definition {
	defs := make([]*Definition, 0, len(catalog))
	for _, id := range IDs() {
		defs = append(defs, catalog[id])
	}
	return defs
}
