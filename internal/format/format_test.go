package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Viraj281105/ClimateX/internal/format"
)

func TestBasicTable(t *testing.T) {
	tb := format.NewTable()
	tb.Header("Policy", "Pollutant", "ATE")
	tb.Row("NAPCC", "EDGAR_CO2", "-1.2345")
	tb.Row("NMEEE", "EDGAR_CH4", "0.0211")
	out := tb.String()

	if !strings.Contains(out, "Policy") {
		t.Errorf("expected header 'Policy' in output:\n%s", out)
	}
	if !strings.Contains(out, "NAPCC") {
		t.Errorf("expected 'NAPCC' in output:\n%s", out)
	}
	if !strings.Contains(out, "-1.2345") {
		t.Errorf("expected '-1.2345' in output:\n%s", out)
	}
	// StyleLight renders with box-drawing characters.
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in output:\n%s", out)
	}
}

func TestTableWithFooter(t *testing.T) {
	tb := format.NewTable()
	tb.Header("Policy", "Pairs")
	tb.Row("NAPCC", 40)
	tb.Row("NMEEE", 40)
	tb.Footer("TOTAL", 80)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") {
		t.Errorf("expected footer 'TOTAL' in output:\n%s", out)
	}
	if !strings.Contains(out, "80") {
		t.Errorf("expected footer value '80' in output:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable()
	tb.Header("Name", "Value")
	tb.Row("pairs", 12345)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	if !strings.Contains(out, "12345") {
		t.Errorf("expected '12345' in output:\n%s", out)
	}
}

func TestFmtFloat(t *testing.T) {
	v := 0.05009
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "null"},
		{&v, "0.0501"},
	}
	for _, tc := range tests {
		got := format.FmtFloat(tc.in)
		if got != tc.want {
			t.Errorf("FmtFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
	}
	for _, tc := range tests {
		got := format.FmtDuration(tc.in)
		if got != tc.want {
			t.Errorf("FmtDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"EDGAR_CO2", 10, "EDGAR_CO2"},
		{"EDGAR_CO2_excl_short-cycle", 12, "EDGAR_CO2..."},
		{"ab", 3, "ab"},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		got := format.Truncate(tc.in, tc.maxLen)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}
