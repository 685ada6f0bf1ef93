package present

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"trade-helper/internal/config"
	"trade-helper/internal/profit"
)

func TestRowsPresenter_Render(t *testing.T) {
	summary := mustCompute(t, profit.TradeInput{CoinPrice: 100, InvestmentAmount: 1000, FeePercent: 0.25, CurrentPrice: 105})

	view := NewRowsPresenter(language.AmericanEnglish, 5, 2).Render(summary)

	if view.BreakEven.Label != breakEvenLabel || view.BreakEven.Value != "100.50125" {
		t.Errorf("unexpected break-even field: %+v", view.BreakEven)
	}
	if len(view.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(view.Rows))
	}

	want := []Row{
		{Percentage: "4.48%", Price: "105.00000", Net: "44.88"},
		{Percentage: "1.00%", Price: "101.50627", Net: "10.02"},
	}
	for i, row := range want {
		if view.Rows[i] != row {
			t.Errorf("row %d: expected %+v, got %+v", i, row, view.Rows[i])
		}
	}
	if len(view.Lines) != 0 {
		t.Errorf("rows variant should not fill lines")
	}
}

func TestRowsPresenter_GroupsThousands(t *testing.T) {
	summary := mustCompute(t, profit.TradeInput{CoinPrice: 64000, InvestmentAmount: 250000, FeePercent: 0})

	view := NewRowsPresenter(language.AmericanEnglish, 2, 2).Render(summary)
	if view.BreakEven.Value != "64,000.00" {
		t.Errorf("expected grouped break-even, got %q", view.BreakEven.Value)
	}
	if view.Rows[0].Net != "2,500.00" {
		t.Errorf("expected grouped net profit, got %q", view.Rows[0].Net)
	}
}

func TestTextPresenter_Render(t *testing.T) {
	summary := mustCompute(t, profit.TradeInput{CoinPrice: 100, InvestmentAmount: 1000, FeePercent: 0.25, CurrentPrice: 105})

	view := TextPresenter{}.Render(summary)

	want := []string{
		"Break Even: 100.501",
		"4.48%: $105.000 ($44.875)",
		"1%: $101.506 ($10.025)",
	}
	if len(view.Lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %v", len(view.Lines), view.Lines)
	}
	for i, line := range want {
		if view.Lines[i] != line {
			t.Errorf("line %d: expected %q, got %q", i, line, view.Lines[i])
		}
	}
	if !strings.HasPrefix(view.Lines[6], "5%: $") {
		t.Errorf("expected last line to be the 5%% target, got %q", view.Lines[6])
	}
}

func TestNew_SelectsVariant(t *testing.T) {
	p, err := New(config.PresentConfig{Variant: "text"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := p.(TextPresenter); !ok {
		t.Errorf("expected TextPresenter, got %T", p)
	}

	p, err = New(config.PresentConfig{Variant: "rows", Locale: "en-US", PriceDigits: 5, NetDigits: 2})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := p.(*RowsPresenter); !ok {
		t.Errorf("expected *RowsPresenter, got %T", p)
	}

	if _, err := New(config.PresentConfig{Variant: "table"}); err == nil {
		t.Errorf("expected error for unknown variant")
	}
	if _, err := New(config.PresentConfig{Variant: "rows", Locale: "not a locale!"}); err == nil {
		t.Errorf("expected error for invalid locale")
	}
}

func TestWrite(t *testing.T) {
	summary := mustCompute(t, profit.TradeInput{CoinPrice: 100, InvestmentAmount: 1000, FeePercent: 0.25})

	var buf bytes.Buffer
	if err := Write(&buf, TextPresenter{}.Render(summary)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 6 {
		t.Errorf("expected 6 text lines, got %d", got)
	}

	buf.Reset()
	if err := Write(&buf, NewRowsPresenter(language.AmericanEnglish, 5, 2).Render(summary)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, breakEvenLabel) || !strings.Contains(out, "101.50627") {
		t.Errorf("unexpected rows output:\n%s", out)
	}
}

func mustCompute(t *testing.T, in profit.TradeInput) profit.TradeSummary {
	t.Helper()
	summary, err := profit.Compute(in)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	return summary
}
