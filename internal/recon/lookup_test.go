package recon

import (
	"testing"

	"gumcheck/internal"
)

func directoryTbl(rows ...[]internal.Cell) internal.Table {
	return tbl([]string{"Email*", "Contact Company/ID", "Contact Company", "Contact Company/GUM Reference ID", "Phone"}, rows...)
}

func TestLookupDedupesByCompany(t *testing.T) {
	dir := directoryTbl(
		[]internal.Cell{sc("x@y.com"), nc(1), sc("Acme"), sc("GUM-1"), sc("111")},
		[]internal.Cell{sc("x@y.com"), nc(2), sc("Globex"), sc("GUM-2"), sc("222")},
		[]internal.Cell{sc("x@y.com"), nc(1), sc("Acme"), sc("GUM-1"), sc("333")},
		[]internal.Cell{sc("other@y.com"), nc(3), sc("Initech"), sc("GUM-3"), sc("444")},
	)

	res, err := LookupByEmail(dir, "x@y.com")
	if err != nil {
		t.Fatal(err)
	}
	if res.RawCount != 3 || res.UniqueCount != 2 {
		t.Fatalf("raw=%d unique=%d", res.RawCount, res.UniqueCount)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records=%d", len(res.Records))
	}
	if res.Records[0].CompanyName.Canonical() != "Acme" || res.Records[1].CompanyName.Canonical() != "Globex" {
		t.Fatalf("order broken: %+v", res.Records)
	}
}

func TestLookupNoMatchIsEmptyNotError(t *testing.T) {
	dir := directoryTbl([]internal.Cell{sc("a@y.com"), nc(1), sc("Acme"), sc("GUM-1"), ec()})

	res, err := LookupByEmail(dir, "missing@y.com")
	if err != nil {
		t.Fatal(err)
	}
	if res.RawCount != 0 || len(res.Records) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLookupExactEquality(t *testing.T) {
	dir := directoryTbl([]internal.Cell{sc("X@y.com"), nc(1), sc("Acme"), sc("GUM-1"), ec()})

	res, err := LookupByEmail(dir, "x@y.com")
	if err != nil {
		t.Fatal(err)
	}
	if res.RawCount != 0 {
		t.Fatalf("case-insensitive match leaked: %+v", res)
	}
}

func TestLookupMissingColumnFailsLoudly(t *testing.T) {
	broken := tbl([]string{"Email*", "Contact Company/ID"})
	if _, err := LookupByEmail(broken, "x@y.com"); err == nil {
		t.Fatal("expected projection error")
	}
}
