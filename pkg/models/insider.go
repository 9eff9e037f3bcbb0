package models

// Transaction direction as reported in the acquired/disposed code of a
// Form 4 non-derivative transaction.
const (
	TransactionAcquisition = "acquisition"
	TransactionDisposition = "disposition"
)

// Insider sentiment signals derived from buy/sell value totals.
const (
	SignalBullish = "bullish"
	SignalBearish = "bearish"
	SignalMixed   = "mixed"
	SignalNeutral = "neutral"
)

// InsiderInfo identifies the reporting owner of a Form 4 filing.
// All transactions from the same filing share one InsiderInfo by reference.
type InsiderInfo struct {
	CIK               string `json:"cik"`
	Name              string `json:"name"`
	IsDirector        bool   `json:"is_director"`
	IsOfficer         bool   `json:"is_officer"`
	IsTenPercentOwner bool   `json:"is_ten_percent_owner"`
	OfficerTitle      string `json:"officer_title,omitempty"`
}

// InsiderTransaction is one non-derivative transaction from a Form 4
// filing. Shares is never zero: transactions without a parseable non-zero
// share count are dropped during parsing. PricePerShare and TotalValue are
// nil when the filing did not report a price.
type InsiderTransaction struct {
	Insider          *InsiderInfo `json:"insider"`
	TransactionDate  string       `json:"transaction_date"`
	TransactionCode  string       `json:"transaction_code"`
	TransactionType  string       `json:"transaction_type"`
	Shares           float64      `json:"shares"`
	PricePerShare    *float64     `json:"price_per_share,omitempty"`
	TotalValue       *float64     `json:"total_value,omitempty"`
	SharesOwnedAfter float64      `json:"shares_owned_after"`
	FilingDate       string       `json:"filing_date"`
	FilingAccession  string       `json:"filing_accession"`
}

// InsiderSummary aggregates open-market buys (code "P") and sells (code
// "S") across a set of transactions. Other codes (grants, exercises,
// gifts, tax withholdings) stay in the transaction list but do not count
// toward the buy/sell totals. UniqueInsiders counts distinct owner CIKs
// across all transactions, not just buys and sells.
type InsiderSummary struct {
	BuyCount       int     `json:"buy_count"`
	SellCount      int     `json:"sell_count"`
	BuyShares      float64 `json:"buy_shares"`
	SellShares     float64 `json:"sell_shares"`
	BuyValue       float64 `json:"buy_value"`
	SellValue      float64 `json:"sell_value"`
	NetShares      float64 `json:"net_shares"`
	UniqueInsiders int     `json:"unique_insiders"`
	Signal         string  `json:"signal"`
}

// FilingProvenance records which filings actually backed an insider
// activity report. The date range spans filing dates, not transaction
// dates.
type FilingProvenance struct {
	FilingCount    int      `json:"filing_count"`
	EarliestFiling string   `json:"earliest_filing,omitempty"`
	LatestFiling   string   `json:"latest_filing,omitempty"`
	Accessions     []string `json:"accessions,omitempty"`
}

// InsiderActivity is the full insider-trading report for one company over
// a lookback window.
type InsiderActivity struct {
	Symbol       string               `json:"symbol,omitempty"`
	CIK          string               `json:"cik"`
	PeriodDays   int                  `json:"period_days"`
	Transactions []InsiderTransaction `json:"transactions"`
	Summary      InsiderSummary       `json:"summary"`
	Provenance   FilingProvenance     `json:"provenance"`
}
