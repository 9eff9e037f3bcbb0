// Package normalize turns raw XBRL company-facts documents into clean,
// deduplicated annual DataPoint series.
//
// The pipeline runs per metric: extract the raw facts for each candidate
// concept, keep only annual observations, collapse restatements of the
// same period ("most recently filed wins"), then pick the candidate whose
// data reaches the most recent fiscal year.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finbrook/edgarscope/internal/edgar"
	"github.com/finbrook/edgarscope/internal/metrics"
	"github.com/finbrook/edgarscope/pkg/models"
)

// Metric normalizes one metric from a company-facts document into a
// chronological (oldest-first) DataPoint series of at most years points.
// When no candidate concept yields any annual fact the series is empty
// and ConceptUsed is blank.
func Metric(facts *edgar.CompanyFacts, def *metrics.Definition, years int) models.MetricSeries {
	cik := strconv.Itoa(facts.CIK)
	series := models.MetricSeries{
		CIK:      cik,
		MetricID: def.ID,
	}
	if years <= 0 {
		return series
	}

	evals := evaluateCandidates(facts, def)
	best, ok := selectBest(evals)
	if !ok {
		return series
	}

	// Most recent years first, then back to chronological order.
	sort.Slice(best.facts, func(i, j int) bool {
		a, b := best.facts[i], best.facts[j]
		if a.fact.FiscalYear != b.fact.FiscalYear {
			return a.fact.FiscalYear > b.fact.FiscalYear
		}
		return a.fact.PeriodEnd > b.fact.PeriodEnd
	})
	if len(best.facts) > years {
		best.facts = best.facts[:years]
	}
	for i, j := 0, len(best.facts)-1; i < j; i, j = i+1, j-1 {
		best.facts[i], best.facts[j] = best.facts[j], best.facts[i]
	}

	series.ConceptUsed = best.candidate.Taxonomy + ":" + best.candidate.Concept
	series.DataPoints = make([]models.DataPoint, 0, len(best.facts))
	for _, df := range best.facts {
		series.DataPoints = append(series.DataPoints, buildDataPoint(cik, def, df))
	}
	return series
}

// dedupedFact is one surviving fact per period end, flagged when it
// superseded earlier filings of the same period.
type dedupedFact struct {
	fact     models.RawFact
	restated bool
}

// evaluation is the outcome of running one candidate concept through
// extraction, annual filtering, and deduplication.
type evaluation struct {
	candidate metrics.Candidate
	facts     []dedupedFact
	maxYear   int
}

// evaluateCandidates runs every candidate in ascending priority order.
func evaluateCandidates(facts *edgar.CompanyFacts, def *metrics.Definition) []evaluation {
	cands := make([]metrics.Candidate, len(def.Candidates))
	copy(cands, def.Candidates)
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Priority < cands[j].Priority })

	evals := make([]evaluation, 0, len(cands))
	for _, cand := range cands {
		raw := extractFacts(facts, cand, def.Unit.Code())
		annual := annualOnly(raw, def.Aggregation)
		deduped := dedupeByPeriodEnd(annual)

		ev := evaluation{candidate: cand, facts: deduped}
		for _, df := range deduped {
			if df.fact.FiscalYear > ev.maxYear {
				ev.maxYear = df.fact.FiscalYear
			}
		}
		evals = append(evals, ev)
	}
	return evals
}

// selectBest reduces the candidate evaluations to the winner: the first
// candidate with data, replaced only by a later one whose max derived
// fiscal year is strictly greater. Exact ties keep the earlier,
// higher-priority candidate; recency trumps priority.
func selectBest(evals []evaluation) (evaluation, bool) {
	withData := evals[:0:0]
	for _, ev := range evals {
		if len(ev.facts) > 0 {
			withData = append(withData, ev)
		}
	}
	if len(withData) == 0 {
		return evaluation{}, false
	}

	best := withData[0]
	for _, ev := range withData[1:] {
		best = fresher(best, ev)
	}
	return best, true
}

// fresher keeps the incumbent unless the challenger is strictly more
// recent.
func fresher(incumbent, challenger evaluation) evaluation {
	if challenger.maxYear > incumbent.maxYear {
		return challenger
	}
	return incumbent
}

// extractFacts selects the raw facts matching a (taxonomy, concept, unit)
// triple. Observations without a period end are unusable downstream and
// are skipped here.
func extractFacts(facts *edgar.CompanyFacts, cand metrics.Candidate, unit string) []models.RawFact {
	concepts, ok := facts.Facts[cand.Taxonomy]
	if !ok {
		return nil
	}
	concept, ok := concepts[cand.Concept]
	if !ok {
		return nil
	}
	obs := concept.Units[unit]
	if len(obs) == 0 {
		return nil
	}

	raw := make([]models.RawFact, 0, len(obs))
	for _, o := range obs {
		if o.End == "" {
			continue
		}
		raw = append(raw, models.RawFact{
			Taxonomy:        cand.Taxonomy,
			Concept:         cand.Concept,
			Unit:            unit,
			Value:           o.Val,
			FiscalYear:      o.FY,
			FiscalPeriod:    o.FP,
			PeriodStart:     o.Start,
			PeriodEnd:       o.End,
			FiledDate:       o.Filed,
			FormType:        o.Form,
			AccessionNumber: o.Accn,
		})
	}
	return raw
}

// annualOnly restricts facts to full-year observations. The form must be
// a 10-K variant and the filer must have reported a fiscal year. Duration
// metrics accept only "FY" periods; end-of-period metrics also accept a
// "Q4" instant, which lands on the same balance-sheet date.
func annualOnly(raw []models.RawFact, agg metrics.AggregationKind) []models.RawFact {
	annual := make([]models.RawFact, 0, len(raw))
	for _, f := range raw {
		if !strings.HasPrefix(f.FormType, "10-K") {
			continue
		}
		if f.FiscalYear == 0 {
			continue
		}
		switch agg {
		case metrics.AggEndOfPeriod:
			if f.FiscalPeriod != "FY" && f.FiscalPeriod != "Q4" {
				continue
			}
		default: // sum and anything unrecognized require a full-year duration
			if f.FiscalPeriod != "FY" {
				continue
			}
		}
		annual = append(annual, f)
	}
	return annual
}

// dedupeByPeriodEnd collapses multiple filings of the same period to the
// most recently filed one. ISO date strings order correctly under plain
// string comparison. The surviving fact's fiscal year is replaced with
// the calendar year of its period end so that cross-company series bucket
// consistently regardless of filer-reported fiscal years.
func dedupeByPeriodEnd(facts []models.RawFact) []dedupedFact {
	groups := make(map[string][]models.RawFact)
	for _, f := range facts {
		groups[f.PeriodEnd] = append(groups[f.PeriodEnd], f)
	}

	deduped := make([]dedupedFact, 0, len(groups))
	for _, group := range groups {
		winner := group[0]
		for _, f := range group[1:] {
			if f.FiledDate > winner.FiledDate {
				winner = f
			}
		}
		winner.FiscalYear = calendarYear(winner.PeriodEnd)
		deduped = append(deduped, dedupedFact{fact: winner, restated: len(group) > 1})
	}
	return deduped
}

// calendarYear extracts the year from an ISO date string.
func calendarYear(isoDate string) int {
	if t, err := time.Parse("2006-01-02", isoDate); err == nil {
		return t.Year()
	}
	if len(isoDate) >= 4 {
		if y, err := strconv.Atoi(isoDate[:4]); err == nil {
			return y
		}
	}
	return 0
}

// buildDataPoint assembles the canonical record for one deduplicated
// annual fact.
func buildDataPoint(cik string, def *metrics.Definition, df dedupedFact) models.DataPoint {
	f := df.fact
	dp := models.DataPoint{
		MetricID:     def.ID,
		CIK:          cik,
		FiscalYear:   f.FiscalYear,
		FiscalPeriod: f.FiscalPeriod,
		PeriodStart:  f.PeriodStart,
		PeriodEnd:    f.PeriodEnd,
		Value:        f.Value,
		Unit:         f.Unit,
		Source: models.SourceRef{
			AccessionNumber: f.AccessionNumber,
			FilingDate:      f.FiledDate,
			FormType:        f.FormType,
			XBRLConcept:     f.Taxonomy + ":" + f.Concept,
		},
		IsLatest: true,
	}
	if df.restated {
		dp.RestatedIn = f.AccessionNumber
	}
	dp.Checksum = Checksum(cik, def.ID, f.FiscalYear, f.Value, f.AccessionNumber)
	return dp
}

// Checksum produces a deterministic fingerprint of a DataPoint's identity
// and value, used to detect unchanged reprocessing.
func Checksum(cik, metricID string, fiscalYear int, value float64, accession string) string {
	payload := fmt.Sprintf("%s|%s|%d|%s|%s",
		cik, metricID, fiscalYear, strconv.FormatFloat(value, 'f', -1, 64), accession)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
