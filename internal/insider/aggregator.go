// Package insider aggregates a company's recent Form 4 filings into a
// merged transaction list, buy/sell summary, and qualitative signal.
package insider

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finbrook/edgarscope/internal/edgar"
	"github.com/finbrook/edgarscope/internal/form4"
	"github.com/finbrook/edgarscope/pkg/models"
)

// DocumentFetcher is the transport collaborator: it lists a company's
// recent filings and retrieves individual filing documents. Caching,
// retry, and request pacing live behind this interface, not here; the
// aggregator's only obligation is to bound in-flight requests to the
// batch size.
type DocumentFetcher interface {
	FilingIndex(ctx context.Context, cik string) (*edgar.FilingIndex, error)
	FilingDocument(ctx context.Context, cik, accession, filename string) (string, error)
}

// ProgressFunc is notified after each batch fully resolves.
type ProgressFunc func(batch, totalBatches, fetched int)

// Options tunes the aggregator. Zero values get the defaults.
type Options struct {
	LookbackDays int // default 90
	MaxFilings   int // default 50
	BatchSize    int // default 5
	OnBatch      ProgressFunc
}

// Aggregator fetches and merges insider transactions for one company at
// a time.
type Aggregator struct {
	fetcher DocumentFetcher
	opts    Options
}

// New creates an aggregator over the given document fetcher.
func New(fetcher DocumentFetcher, opts Options) *Aggregator {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 90
	}
	if opts.MaxFilings <= 0 {
		opts.MaxFilings = 50
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	return &Aggregator{fetcher: fetcher, opts: opts}
}

// Activity fetches and aggregates a company's insider transactions over
// the lookback window. days <= 0 uses the configured default. A company
// with no Form 4 filings in the window yields an empty activity report,
// not an error; individual filing failures degrade to empty
// contributions without aborting their siblings.
func (a *Aggregator) Activity(ctx context.Context, cik string, days int) (*models.InsiderActivity, error) {
	if days <= 0 {
		days = a.opts.LookbackDays
	}

	idx, err := a.fetcher.FilingIndex(ctx, cik)
	if err != nil {
		return nil, err
	}

	candidates := selectCandidates(idx, days, a.opts.MaxFilings, time.Now())
	outcomes := a.fetchBatches(ctx, cik, candidates)

	var txs []models.InsiderTransaction
	prov := models.FilingProvenance{}
	for _, out := range outcomes {
		if !out.fetched {
			continue
		}
		prov.FilingCount++
		prov.Accessions = append(prov.Accessions, out.ref.AccessionNumber)
		if prov.EarliestFiling == "" || out.ref.FilingDate < prov.EarliestFiling {
			prov.EarliestFiling = out.ref.FilingDate
		}
		if out.ref.FilingDate > prov.LatestFiling {
			prov.LatestFiling = out.ref.FilingDate
		}
		txs = append(txs, out.txs...)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].TransactionDate > txs[j].TransactionDate
	})

	return &models.InsiderActivity{
		CIK:          idx.CIK,
		PeriodDays:   days,
		Transactions: txs,
		Summary:      Summarize(txs),
		Provenance:   prov,
	}, nil
}

// selectCandidates keeps Form 4 and 4/A filings whose filing date falls
// within the lookback window, capped to maxFilings after the filter. The
// index is already ordered most-recent-first.
func selectCandidates(idx *edgar.FilingIndex, days, maxFilings int, now time.Time) []edgar.FilingRef {
	cutoff := now.AddDate(0, 0, -days)

	var candidates []edgar.FilingRef
	for i := 0; i < idx.Len(); i++ {
		ref := idx.At(i)
		if ref.FormType != "4" && ref.FormType != "4/A" {
			continue
		}
		filed, err := time.Parse("2006-01-02", ref.FilingDate)
		if err != nil || filed.Before(cutoff) {
			continue
		}
		candidates = append(candidates, ref)
		if len(candidates) >= maxFilings {
			break
		}
	}
	return candidates
}

// outcome is one filing's contribution: whether its document was
// actually fetched, and whatever transactions survived parsing.
type outcome struct {
	ref     edgar.FilingRef
	fetched bool
	txs     []models.InsiderTransaction
}

// fetchBatches processes candidates in fixed-size batches. Within a
// batch all documents are fetched and parsed concurrently; a batch fully
// drains before the next starts, so in-flight requests never exceed the
// batch size. Each slot writes only its own index, so no locking is
// needed across the concurrent fetches.
func (a *Aggregator) fetchBatches(ctx context.Context, cik string, candidates []edgar.FilingRef) []outcome {
	outcomes := make([]outcome, len(candidates))
	for i, ref := range candidates {
		outcomes[i].ref = ref
	}

	size := a.opts.BatchSize
	totalBatches := (len(candidates) + size - 1) / size

	for batch := 0; batch*size < len(candidates); batch++ {
		start := batch * size
		end := start + size
		if end > len(candidates) {
			end = len(candidates)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			slot := &outcomes[i]
			g.Go(func() error {
				doc, err := a.fetcher.FilingDocument(gctx, cik, slot.ref.AccessionNumber, slot.ref.PrimaryDocument)
				if err != nil {
					return nil // degrade to an empty contribution
				}
				slot.fetched = true
				txs, err := form4.Parse(doc, slot.ref.AccessionNumber, slot.ref.FilingDate)
				if err != nil {
					return nil
				}
				slot.txs = txs
				return nil
			})
		}
		_ = g.Wait() // tasks never return errors; degraded fetches stay empty

		if a.opts.OnBatch != nil {
			fetched := 0
			for i := 0; i < end; i++ {
				if outcomes[i].fetched {
					fetched++
				}
			}
			a.opts.OnBatch(batch+1, totalBatches, fetched)
		}
	}
	return outcomes
}

// Summarize partitions transactions into open-market buys (code "P") and
// sells (code "S") and computes the aggregate totals. Other codes stay
// out of the buy/sell totals but still count toward unique insiders.
func Summarize(txs []models.InsiderTransaction) models.InsiderSummary {
	s := models.InsiderSummary{}
	owners := make(map[string]struct{})

	for _, tx := range txs {
		if tx.Insider != nil {
			owners[tx.Insider.CIK] = struct{}{}
		}
		value := 0.0
		if tx.TotalValue != nil {
			value = *tx.TotalValue
		}
		switch tx.TransactionCode {
		case "P":
			s.BuyCount++
			s.BuyShares += tx.Shares
			s.BuyValue += value
		case "S":
			s.SellCount++
			s.SellShares += tx.Shares
			s.SellValue += value
		}
	}

	s.NetShares = s.BuyShares - s.SellShares
	s.UniqueInsiders = len(owners)
	s.Signal = Classify(s.BuyValue, s.SellValue)
	return s
}

// Classify maps buy/sell value totals to a qualitative signal. One-sided
// activity is decisive; two-sided activity compares the ratio against
// 2:1 thresholds.
func Classify(buyValue, sellValue float64) string {
	switch {
	case buyValue == 0 && sellValue == 0:
		return models.SignalNeutral
	case sellValue == 0:
		return models.SignalBullish
	case buyValue == 0:
		return models.SignalBearish
	}

	ratio := buyValue / sellValue
	switch {
	case ratio > 2:
		return models.SignalBullish
	case ratio < 0.5:
		return models.SignalBearish
	default:
		return models.SignalMixed
	}
}
