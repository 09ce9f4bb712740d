package view

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"tracker/internal/core"
)

func scenarioLedger(t *testing.T) *core.Ledger {
	t.Helper()
	l := core.NewLedger(nil)
	if _, err := l.Add("Coffee", core.Money{Cents: 350}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Add("Book", core.Money{Cents: 1299}); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestFormatterTwoDecimals(t *testing.T) {
	f := NewFormatter(language.English, "")
	cases := map[int64]string{
		0:    "0.00",
		5:    "0.05",
		350:  "3.50",
		1649: "16.49",
	}
	for cents, want := range cases {
		if got := f.Number(core.Money{Cents: cents}); got != want {
			t.Fatalf("%d: expected %q, got %q", cents, want, got)
		}
	}
	if got := f.Amount(core.Money{Cents: 1299}); got != "₹ 12.99" {
		t.Fatalf("expected default glyph, got %q", got)
	}
}

func TestListFollowsLedgerOrder(t *testing.T) {
	l := scenarioLedger(t)
	f := NewFormatter(language.English, "€")
	rows := List(l, f)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	recs := l.Records()
	for i, r := range rows {
		if r.Index != i || r.ID != recs[i].ID || r.Name != recs[i].Name {
			t.Fatalf("row %d out of sync with ledger: %+v", i, r)
		}
	}
	if rows[0].Amount != "€ 3.50" || rows[1].Amount != "€ 12.99" {
		t.Fatalf("unexpected amounts: %q %q", rows[0].Amount, rows[1].Amount)
	}

	// After a delete the indexes are rebuilt from scratch.
	l.DeleteAt(0)
	rows = List(l, f)
	if len(rows) != 1 || rows[0].Index != 0 || rows[0].Name != "Book" {
		t.Fatalf("unexpected rows after delete: %+v", rows)
	}
}

func TestBuildTotal(t *testing.T) {
	v := Build(scenarioLedger(t), NewFormatter(language.English, ""))
	if v.Total != "16.49" || v.Count != 2 || v.Currency != DefaultCurrency {
		t.Fatalf("unexpected view: %+v", v)
	}
	empty := Build(core.NewLedger(nil), NewFormatter(language.English, ""))
	if empty.Total != "0.00" || len(empty.Rows) != 0 {
		t.Fatalf("unexpected empty view: %+v", empty)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, Build(scenarioLedger(t), NewFormatter(language.English, ""))); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Expenses (2)", "Coffee", "₹ 3.50", "Book", "₹ 12.99", "16.49"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Coffee") > strings.Index(out, "Book") {
		t.Fatalf("rows out of order:\n%s", out)
	}

	buf.Reset()
	RenderText(&buf, Build(core.NewLedger(nil), NewFormatter(language.English, "")))
	if !strings.Contains(buf.String(), "no expenses yet") {
		t.Fatalf("expected empty hint, got:\n%s", buf.String())
	}
}
