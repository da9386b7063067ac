package panel

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCSV = `Year,confounder_gdp,EDGAR_CO2,EDGAR_CH4,HCB_air
2000,1200.5,10.0,2.0,0.5
2001,1250.0,11.0,2.1,0.6
2002,1300.0,12.0,2.2,0.7
`

func TestLoadCSV(t *testing.T) {
	p, err := LoadCSV(strings.NewReader(sampleCSV), "Year")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	if p.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", p.Rows())
	}
	if diff := cmp.Diff([]int{2000, 2001, 2002}, p.Periods()); diff != "" {
		t.Errorf("Periods mismatch (-want +got):\n%s", diff)
	}

	gdp, ok := p.Column("confounder_gdp")
	if !ok {
		t.Fatal("confounder_gdp column missing")
	}
	if diff := cmp.Diff([]float64{1200.5, 1250.0, 1300.0}, gdp); diff != "" {
		t.Errorf("confounder_gdp mismatch (-want +got):\n%s", diff)
	}

	// The period column is also exposed numerically (Year-as-confounder).
	year, ok := p.Column("Year")
	if !ok {
		t.Fatal("Year column not exposed numerically")
	}
	if year[2] != 2002 {
		t.Errorf("Year[2] = %f, want 2002", year[2])
	}
}

func TestLoadCSV_BlankCellBecomesNaN(t *testing.T) {
	csv := "Year,gdp,EDGAR_CO2\n2000,1.0,\n2001,2.0,5.0\n"
	p, err := LoadCSV(strings.NewReader(csv), "Year")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	col, _ := p.Column("EDGAR_CO2")
	if !math.IsNaN(col[0]) {
		t.Errorf("blank cell = %f, want NaN", col[0])
	}
	if col[1] != 5.0 {
		t.Errorf("col[1] = %f, want 5.0", col[1])
	}
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing period column", "A,B\n1,2\n"},
		{"duplicate column", "Year,gdp,gdp\n2000,1,2\n"},
		{"duplicate period", "Year,gdp\n2000,1\n2000,2\n"},
		{"decreasing period", "Year,gdp\n2001,1\n2000,2\n"},
		{"non-numeric cell", "Year,gdp\n2000,abc\n"},
		{"non-integer period", "Year,gdp\n20.5,1\n"},
		{"zero rows", "Year,gdp\n"},
		{"ragged row", "Year,gdp\n2000,1,9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSV(strings.NewReader(tt.csv), "Year"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestOutcomesByPrefix(t *testing.T) {
	p, err := LoadCSV(strings.NewReader(sampleCSV), "Year")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	got := p.OutcomesByPrefix([]string{"EDGAR_", "HCB_"})
	want := []string{"EDGAR_CH4", "EDGAR_CO2", "HCB_air"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OutcomesByPrefix mismatch (-want +got):\n%s", diff)
	}

	if got := p.OutcomesByPrefix([]string{"PCB_"}); len(got) != 0 {
		t.Errorf("expected no PCB_ outcomes, got %v", got)
	}
}
