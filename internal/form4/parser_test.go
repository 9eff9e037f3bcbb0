package form4

import (
	"fmt"
	"testing"
)

const ownershipDoc = `<?xml version="1.0"?>
<ownershipDocument>
  <schemaVersion>X0407</schemaVersion>
  <documentType>4</documentType>
  <issuer>
    <issuerCik>0000320193</issuerCik>
    <issuerName>Apple Inc.</issuerName>
    <issuerTradingSymbol>AAPL</issuerTradingSymbol>
  </issuer>
  %s
  %s
</ownershipDocument>`

const ownerBlock = `<reportingOwner>
  <reportingOwnerId>
    <rptOwnerCik>0001214156</rptOwnerCik>
    <rptOwnerName>DOE JOHN A</rptOwnerName>
  </reportingOwnerId>
  <reportingOwnerRelationship>
    <isDirector>0</isDirector>
    <isOfficer>1</isOfficer>
    <isTenPercentOwner>false</isTenPercentOwner>
    <officerTitle>Chief Financial Officer</officerTitle>
  </reportingOwnerRelationship>
</reportingOwner>`

func saleTx(shares, price string) string {
	priceEl := ""
	if price != "" {
		priceEl = fmt.Sprintf("<transactionPricePerShare><value>%s</value></transactionPricePerShare>", price)
	}
	return fmt.Sprintf(`<nonDerivativeTable>
  <nonDerivativeTransaction>
    <securityTitle><value>Common Stock</value></securityTitle>
    <transactionDate><value>2026-07-15</value></transactionDate>
    <transactionCoding>
      <transactionFormType>4</transactionFormType>
      <transactionCode>S</transactionCode>
      <equitySwapInvolved>0</equitySwapInvolved>
    </transactionCoding>
    <transactionAmounts>
      <transactionShares><value>%s</value></transactionShares>
      %s
      <transactionAcquiredDisposedCode><value>D</value></transactionAcquiredDisposedCode>
    </transactionAmounts>
    <postTransactionAmounts>
      <sharesOwnedFollowingTransaction><value>64100</value></sharesOwnedFollowingTransaction>
    </postTransactionAmounts>
  </nonDerivativeTransaction>
</nonDerivativeTable>`, shares, priceEl)
}

func TestParseSale(t *testing.T) {
	doc := fmt.Sprintf(ownershipDoc, ownerBlock, saleTx("1,500", "212.3456"))

	txs, err := Parse(doc, "0001214156-26-000042", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}

	tx := txs[0]
	if tx.Insider.Name != "John A Doe" {
		t.Errorf("expected name John A Doe, got %q", tx.Insider.Name)
	}
	if tx.Insider.CIK != "0001214156" {
		t.Errorf("expected owner CIK 0001214156, got %q", tx.Insider.CIK)
	}
	if tx.Insider.IsDirector || !tx.Insider.IsOfficer || tx.Insider.IsTenPercentOwner {
		t.Errorf("wrong role flags: %+v", tx.Insider)
	}
	if tx.Insider.OfficerTitle != "Chief Financial Officer" {
		t.Errorf("expected officer title, got %q", tx.Insider.OfficerTitle)
	}

	if tx.TransactionDate != "2026-07-15" || tx.TransactionCode != "S" {
		t.Errorf("wrong date/code: %s %s", tx.TransactionDate, tx.TransactionCode)
	}
	if tx.TransactionType != "disposition" {
		t.Errorf("expected disposition, got %q", tx.TransactionType)
	}
	if tx.Shares != 1500 {
		t.Errorf("expected 1500 shares, got %g", tx.Shares)
	}
	if tx.PricePerShare == nil || *tx.PricePerShare != 212.35 {
		t.Errorf("expected price 212.35, got %v", tx.PricePerShare)
	}
	if tx.TotalValue == nil || *tx.TotalValue != 318525.00 {
		t.Errorf("expected total 318525.00, got %v", tx.TotalValue)
	}
	if tx.SharesOwnedAfter != 64100 {
		t.Errorf("expected 64100 shares after, got %g", tx.SharesOwnedAfter)
	}
	if tx.FilingAccession != "0001214156-26-000042" || tx.FilingDate != "2026-07-16" {
		t.Errorf("provenance not carried: %s %s", tx.FilingAccession, tx.FilingDate)
	}
}

func TestParseNoOwnerName(t *testing.T) {
	anonOwner := `<reportingOwner>
  <reportingOwnerId><rptOwnerCik>0001214156</rptOwnerCik></reportingOwnerId>
</reportingOwner>`
	doc := fmt.Sprintf(ownershipDoc, anonOwner, saleTx("1500", "100"))

	txs, err := Parse(doc, "a", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("document without an owner name must yield zero transactions, got %d", len(txs))
	}
}

func TestParseNoOwnerSection(t *testing.T) {
	doc := fmt.Sprintf(ownershipDoc, "", saleTx("1500", "100"))
	txs, err := Parse(doc, "a", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected zero transactions, got %d", len(txs))
	}
}

func TestParseDropsUnusableTransactions(t *testing.T) {
	tests := []struct {
		name   string
		shares string
	}{
		{"missing shares", ""},
		{"non-numeric shares", "n/a"},
		{"rounds to zero", "0.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(ownershipDoc, ownerBlock, saleTx(tt.shares, "100"))
			txs, err := Parse(doc, "a", "2026-07-16")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(txs) != 0 {
				t.Errorf("expected transaction dropped, got %d", len(txs))
			}
		})
	}
}

func TestParseMissingPrice(t *testing.T) {
	doc := fmt.Sprintf(ownershipDoc, ownerBlock, saleTx("1500", ""))
	txs, err := Parse(doc, "a", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].PricePerShare != nil || txs[0].TotalValue != nil {
		t.Error("missing price must leave price and total value nil")
	}
}

func TestParseIgnoresDerivativeTable(t *testing.T) {
	derivative := `<derivativeTable>
  <derivativeTransaction>
    <transactionDate><value>2026-07-15</value></transactionDate>
    <transactionCoding><transactionCode>M</transactionCode></transactionCoding>
    <transactionAmounts>
      <transactionShares><value>9000</value></transactionShares>
    </transactionAmounts>
  </derivativeTransaction>
</derivativeTable>`
	doc := fmt.Sprintf(ownershipDoc, ownerBlock, derivative)

	txs, err := Parse(doc, "a", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("derivative transactions must be ignored, got %d", len(txs))
	}
}

func TestTransactionTypeFallsBackToCode(t *testing.T) {
	grant := `<nonDerivativeTable>
  <nonDerivativeTransaction>
    <transactionDate><value>2026-07-01</value></transactionDate>
    <transactionCoding><transactionCode>A</transactionCode></transactionCoding>
    <transactionAmounts>
      <transactionShares><value>2000</value></transactionShares>
    </transactionAmounts>
  </nonDerivativeTransaction>
</nonDerivativeTable>`
	doc := fmt.Sprintf(ownershipDoc, ownerBlock, grant)

	txs, err := Parse(doc, "a", "2026-07-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].TransactionType != "acquisition" {
		t.Errorf("code A without a disposed flag must map to acquisition, got %q", txs[0].TransactionType)
	}
}

func TestNormalizeOwnerName(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"DOE JOHN A", "John A Doe"},
		{"SMITH ALICE", "Alice Smith"},
		{"John Doe", "John Doe"},
		{"MUSK", "Musk"},
		{"  COOK   TIMOTHY  D ", "Timothy D Cook"},
	}
	for _, tt := range tests {
		if got := normalizeOwnerName(tt.raw); got != tt.want {
			t.Errorf("normalizeOwnerName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
