// Package form4 parses SEC Form 4 ownership filings: the reporting
// owner's identity and their non-derivative transactions. Derivative
// (options) transactions are out of scope.
//
// Filings from earlier years routinely carry non-conforming markup, so
// extraction is tolerant by construction: fields are looked up by path
// into a leniently parsed document tree, and anything missing skips the
// field or the block rather than failing the document.
package form4

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/finbrook/edgarscope/pkg/models"
)

// Parse extracts the non-derivative transactions from one Form 4
// document. A document without a usable reporting owner yields zero
// transactions and no error; only an unreadable document errors.
func Parse(doc, accession, filingDate string) ([]models.InsiderTransaction, error) {
	// The lenient HTML parser swallows the XML prolog and unknown tags,
	// lowercasing element names along the way.
	tree, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	owner := extractOwner(tree)
	if owner == nil {
		return nil, nil
	}

	var txs []models.InsiderTransaction
	tree.Find("nonderivativetable nonderivativetransaction").Each(func(_ int, block *goquery.Selection) {
		if tx, ok := extractTransaction(block, owner, accession, filingDate); ok {
			txs = append(txs, tx)
		}
	})
	return txs, nil
}

// extractOwner reads the reporting-owner section. A missing name makes
// the whole document unparsable.
func extractOwner(tree *goquery.Document) *models.InsiderInfo {
	section := tree.Find("reportingowner").First()
	if section.Length() == 0 {
		return nil
	}

	name := fieldText(section, "rptownername")
	if name == "" {
		return nil
	}

	return &models.InsiderInfo{
		CIK:               fieldText(section, "rptownercik"),
		Name:              normalizeOwnerName(name),
		IsDirector:        boolField(section, "isdirector"),
		IsOfficer:         boolField(section, "isofficer"),
		IsTenPercentOwner: boolField(section, "istenpercentowner"),
		OfficerTitle:      fieldText(section, "officertitle"),
	}
}

// extractTransaction reads one non-derivative transaction block. A block
// without a transaction date, a single-letter code, or a parseable
// non-zero share count is dropped silently.
func extractTransaction(block *goquery.Selection, owner *models.InsiderInfo, accession, filingDate string) (models.InsiderTransaction, bool) {
	date := fieldText(block, "transactiondate")
	code := fieldText(block, "transactioncode")
	if date == "" || len(code) != 1 {
		return models.InsiderTransaction{}, false
	}

	shares, ok := numericField(block, "transactionshares")
	if !ok {
		return models.InsiderTransaction{}, false
	}
	shares = math.Round(shares)
	if shares == 0 {
		return models.InsiderTransaction{}, false
	}

	tx := models.InsiderTransaction{
		Insider:         owner,
		TransactionDate: date,
		TransactionCode: code,
		TransactionType: transactionType(block, code),
		Shares:          shares,
		FilingDate:      filingDate,
		FilingAccession: accession,
	}

	if price, ok := numericField(block, "transactionpricepershare"); ok {
		p := round2(price)
		total := round2(shares * p)
		tx.PricePerShare = &p
		tx.TotalValue = &total
	}

	if after, ok := numericField(block, "sharesownedfollowingtransaction"); ok {
		tx.SharesOwnedAfter = after
	}

	return tx, true
}

// transactionType maps the acquired/disposed flag to a direction,
// falling back on the transaction code when the flag is absent.
func transactionType(block *goquery.Selection, code string) string {
	switch fieldText(block, "transactionacquireddisposedcode") {
	case "A":
		return models.TransactionAcquisition
	case "D":
		return models.TransactionDisposition
	}
	if code == "P" || code == "A" || code == "M" {
		return models.TransactionAcquisition
	}
	return models.TransactionDisposition
}

// fieldText looks up the first element at path and returns its nested
// value text when present, else its own text. Missing fields come back
// empty; nothing is ever validated against a schema.
func fieldText(sel *goquery.Selection, path string) string {
	node := sel.Find(path).First()
	if node.Length() == 0 {
		return ""
	}
	if v := strings.TrimSpace(node.Find("value").First().Text()); v != "" {
		return v
	}
	return strings.TrimSpace(node.Text())
}

// numericField parses an amount element that may wrap its number in a
// nested value field or carry it as bare text.
func numericField(sel *goquery.Selection, path string) (float64, bool) {
	raw := fieldText(sel, path)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// boolField is true only for literal "1" or "true" values.
func boolField(sel *goquery.Selection, path string) bool {
	v := fieldText(sel, path)
	return v == "1" || v == "true"
}

// normalizeOwnerName converts EDGAR's "LAST FIRST MIDDLE" owner names to
// "First Middle Last". Names that already contain a space and mixed case
// are assumed normalized and pass through unchanged.
func normalizeOwnerName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if strings.Contains(name, " ") && name != strings.ToUpper(name) {
		return name
	}

	tokens := strings.Fields(name)
	if len(tokens) > 1 {
		tokens = append(tokens[1:], tokens[0])
	}
	for i, tok := range tokens {
		tokens[i] = titleCase(tok)
	}
	return strings.Join(tokens, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func titleCase(tok string) string {
	if tok == "" {
		return tok
	}
	lower := strings.ToLower(tok)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
