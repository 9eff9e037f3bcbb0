// Package models defines the shared domain types exchanged between the
// EDGAR client, the normalization pipeline, the insider aggregator, and
// the calling layers (CLI, API).
package models

// RawFact is a single XBRL observation as reported in a company-facts
// document: one (concept, period, value) tuple from one filing. Many raw
// facts may describe the same economic fact; the normalization pipeline
// collapses them into DataPoints.
type RawFact struct {
	Taxonomy        string  `json:"taxonomy"`
	Concept         string  `json:"concept"`
	Unit            string  `json:"unit"`
	Value           float64 `json:"value"`
	FiscalYear      int     `json:"fiscal_year"`
	FiscalPeriod    string  `json:"fiscal_period"` // "FY", "Q1".."Q4"
	PeriodStart     string  `json:"period_start,omitempty"`
	PeriodEnd       string  `json:"period_end"`
	FiledDate       string  `json:"filed_date"`
	FormType        string  `json:"form_type"`
	AccessionNumber string  `json:"accession_number"`
}

// SourceRef identifies the filing a DataPoint was taken from.
type SourceRef struct {
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	FormType        string `json:"form_type"`
	XBRLConcept     string `json:"xbrl_concept"`
}

// DataPoint is the canonical, deduplicated record for one metric of one
// company in one annual period. After deduplication the period end date
// uniquely identifies a DataPoint within a (company, metric) series, and
// FiscalYear is always derived from PeriodEnd rather than taken from the
// filer-reported value.
type DataPoint struct {
	MetricID     string    `json:"metric_id"`
	CIK          string    `json:"cik"`
	FiscalYear   int       `json:"fiscal_year"`
	FiscalPeriod string    `json:"fiscal_period"`
	PeriodStart  string    `json:"period_start,omitempty"`
	PeriodEnd    string    `json:"period_end"`
	Value        float64   `json:"value"`
	Unit         string    `json:"unit"`
	Source       SourceRef `json:"source"`
	RestatedIn   string    `json:"restated_in,omitempty"`
	IsLatest     bool      `json:"is_latest"`
	Checksum     string    `json:"checksum"`
}

// MetricSeries is the output of metric normalization: the chronological
// DataPoints plus the "taxonomy:concept" identifier of the XBRL concept
// that won candidate selection. ConceptUsed is empty when no candidate
// produced any annual fact.
type MetricSeries struct {
	Symbol      string      `json:"symbol,omitempty"`
	CIK         string      `json:"cik"`
	MetricID    string      `json:"metric_id"`
	ConceptUsed string      `json:"concept_used,omitempty"`
	DataPoints  []DataPoint `json:"data_points"`
}
