package metrics

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	def, err := Lookup("revenue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ID != "revenue" || def.Unit != UnitCurrency || def.Aggregation != AggSum {
		t.Errorf("wrong revenue definition: %+v", def)
	}
	if len(def.Candidates) < 2 {
		t.Error("revenue should have multiple candidate concepts")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("ebitda")
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
	var unknown *ErrUnknownMetric
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownMetric, got %T", err)
	}
	if unknown.ID != "ebitda" {
		t.Errorf("error should carry the requested ID, got %q", unknown.ID)
	}
}

func TestCatalogShape(t *testing.T) {
	ids := IDs()
	if len(ids) != len(All()) {
		t.Fatal("IDs and All must agree on catalog size")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not sorted: %q before %q", ids[i-1], ids[i])
		}
	}

	for _, def := range All() {
		if len(def.Candidates) == 0 {
			t.Errorf("%s has no candidate concepts", def.ID)
		}
		seen := make(map[int]bool)
		for _, c := range def.Candidates {
			if c.Taxonomy == "" || c.Concept == "" {
				t.Errorf("%s has an incomplete candidate: %+v", def.ID, c)
			}
			if seen[c.Priority] {
				t.Errorf("%s has duplicate candidate priority %d", def.ID, c.Priority)
			}
			seen[c.Priority] = true
		}
	}
}

func TestUnitCode(t *testing.T) {
	if UnitCurrency.Code() != "USD" {
		t.Errorf("currency unit code = %q", UnitCurrency.Code())
	}
	if UnitShares.Code() != "shares" {
		t.Errorf("shares unit code = %q", UnitShares.Code())
	}
	if UnitPerShare.Code() != "USD/shares" {
		t.Errorf("per-share unit code = %q", UnitPerShare.Code())
	}
}
