package impact

import (
	"strings"
	"testing"
)

func sampleTable() *Table {
	return &Table{Records: []Record{
		{Policy: "NAPCC", Year: 2008, Pollutant: "EDGAR_CO2",
			ATE: fp(-4.2), PValueATE: fp(0.01), PValuePlacebo: fp(0.02)},
		{Policy: "NAPCC", Year: 2008, Pollutant: "EDGAR_CH4",
			ATE: fp(0.3), PValueATE: fp(0.6), PValuePlacebo: fp(0.5)},
		{Policy: "NAPCC", Year: 2008, Pollutant: "EDGAR_broken"},
		{Policy: "NMEEE", Year: 2009, Pollutant: "HCB_air",
			ATE: fp(-9.9), PValueATE: fp(0.001), PValuePlacebo: fp(0.0)},
		{Policy: "NMEEE", Year: 2009, Pollutant: "PAH_air",
			ATE: fp(1.0), PValueATE: fp(0.04), PValuePlacebo: nil},
	}}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTable())
	if s.Pairs != 5 {
		t.Errorf("Pairs = %d, want 5", s.Pairs)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if s.NoPlacebo != 1 {
		t.Errorf("NoPlacebo = %d, want 1", s.NoPlacebo)
	}
	if s.Significant != 2 {
		t.Errorf("Significant = %d, want 2", s.Significant)
	}
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(sampleTable(), 10)

	for _, want := range []string{
		"Pairs:       5",
		"Failed:      1",
		"Significant: 2",
		"HCB_air",
		"EDGAR_CO2",
		"-9.9000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Strongest effect first.
	if strings.Index(out, "HCB_air") > strings.Index(out, "EDGAR_CO2") {
		t.Error("significant effects not sorted by magnitude")
	}
	// Insignificant and failed rows stay out of the detail table.
	if strings.Contains(out, "EDGAR_CH4") || strings.Contains(out, "EDGAR_broken") {
		t.Errorf("insignificant rows leaked into report:\n%s", out)
	}
}

func TestFormatReport_TopN(t *testing.T) {
	out := FormatReport(sampleTable(), 1)
	if strings.Contains(out, "EDGAR_CO2") {
		t.Errorf("topN=1 should keep only the strongest effect:\n%s", out)
	}
	if !strings.Contains(out, "HCB_air") {
		t.Errorf("strongest effect missing:\n%s", out)
	}
}

func TestFormatReport_Empty(t *testing.T) {
	table := &Table{Records: []Record{
		{Policy: "NAPCC", Year: 2008, Pollutant: "EDGAR_CO2",
			ATE: fp(0.1), PValueATE: fp(0.9), PValuePlacebo: fp(0.8)},
	}}
	out := FormatReport(table, 0)
	if !strings.Contains(out, "No significant effects.") {
		t.Errorf("expected empty-report notice:\n%s", out)
	}
}
