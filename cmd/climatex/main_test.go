package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Viraj281105/ClimateX/adapters/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func buildInputs(t *testing.T) (panelPath, policyPath string) {
	t.Helper()
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("Year,confounder_gdp,EDGAR_emissions\n")
	for year := 2000; year <= 2010; year++ {
		v := 100.0 - 0.1*float64(year-2000) + 0.05*math.Sin(float64(year))
		if year >= 2005 {
			v -= 8.0
		}
		b.WriteString(fmt.Sprintf("%d,%f,%f\n", year, 100.0+2.0*float64(year-2000), v))
	}
	panelPath = filepath.Join(dir, "panel.csv")
	writeFile(t, panelPath, b.String())

	policyPath = filepath.Join(dir, "policies.csv")
	writeFile(t, policyPath, "Policy,Year,policy_type\nCleanAirAct,2005,AirQualityStandard\n")
	return panelPath, policyPath
}

// resetCLIState restores the package-level flag structs to their
// declared defaults. Flag values are bound to these structs, so they
// leak between Execute calls otherwise.
func resetCLIState() {
	rootFlags.logLevel = "info"
	rootFlags.logFormat = "text"

	impactFlags.configPath = ""
	impactFlags.panelPath = ""
	impactFlags.periodCol = "Year"
	impactFlags.policyPath = ""
	impactFlags.nameCol = "Policy"
	impactFlags.yearCol = "Year"
	impactFlags.confounders = nil
	impactFlags.outcomes = nil
	impactFlags.prefixes = nil
	impactFlags.trials = 0
	impactFlags.workers = 0
	impactFlags.seed = 0
	impactFlags.output = ""
	impactFlags.storePath = ""
	impactFlags.top = 15

	inspectFlags.panelPath = ""
	inspectFlags.periodCol = "Year"
	inspectFlags.prefixes = nil

	runsFlags.storePath = store.DefaultDBPath
	runsFlags.runID = ""
	runsFlags.top = 15
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCLIState()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImpactCommand_EndToEnd(t *testing.T) {
	panelPath, policyPath := buildInputs(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "impact.csv")
	dbPath := filepath.Join(dir, "impacts.db")

	stdout, err := execute(t, "impact",
		"--panel", panelPath,
		"--policies", policyPath,
		"--confounder", "confounder_gdp",
		"--outcome-prefix", "EDGAR_",
		"--trials", "20",
		"--seed", "7",
		"--out", outPath,
		"--store", dbPath,
	)
	if err != nil {
		t.Fatalf("impact command: %v\n%s", err, stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("impact table not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines:\n%s", len(lines), data)
	}
	if lines[0] != "policy,year,pollutant,ate,p_value_ate,p_value_placebo" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "CleanAirAct,2005,EDGAR_emissions,-") {
		t.Errorf("expected a negative ATE row, got: %s", lines[1])
	}

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("persisted runs = %d, want 1", len(runs))
	}
	if runs[0].Pairs != 1 || runs[0].Failed != 0 {
		t.Errorf("run counters = %d pairs / %d failed, want 1/0", runs[0].Pairs, runs[0].Failed)
	}
}

func TestImpactCommand_ConfigFile(t *testing.T) {
	panelPath, policyPath := buildInputs(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "impact.csv")

	cfgPath := filepath.Join(dir, "run.yaml")
	writeFile(t, cfgPath, fmt.Sprintf(`
panel: %s
policies: %s
confounders: [confounder_gdp]
outcome_prefixes: [EDGAR_]
trials: 10
seed: 3
output: %s
`, panelPath, policyPath, outPath))

	stdout, err := execute(t, "impact", "--config", cfgPath)
	if err != nil {
		t.Fatalf("impact --config: %v\n%s", err, stdout)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if !strings.Contains(stdout, "Policy Impact Report") {
		t.Errorf("expected report on stdout:\n%s", stdout)
	}
}

func TestImpactCommand_StructuralFailureWritesNoOutput(t *testing.T) {
	panelPath, _ := buildInputs(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "impact.csv")

	// Empty policy list: structurally invalid, fail fast, no output file.
	policyPath := filepath.Join(dir, "policies.csv")
	writeFile(t, policyPath, "Policy,Year\n")

	_, err := execute(t, "impact",
		"--panel", panelPath,
		"--policies", policyPath,
		"--confounder", "confounder_gdp",
		"--out", outPath,
	)
	if err == nil {
		t.Fatal("expected structural error")
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("structurally invalid run must not write a partial output file")
	}
}

func TestRunsCommand(t *testing.T) {
	panelPath, policyPath := buildInputs(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "impacts.db")

	_, err := execute(t, "impact",
		"--panel", panelPath,
		"--policies", policyPath,
		"--confounder", "confounder_gdp",
		"--trials", "10",
		"--out", filepath.Join(dir, "impact.csv"),
		"--store", dbPath,
	)
	if err != nil {
		t.Fatalf("impact: %v", err)
	}

	stdout, err := execute(t, "runs", "--store", dbPath)
	if err != nil {
		t.Fatalf("runs: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "panel.csv") || !strings.Contains(stdout, "policies.csv") {
		t.Errorf("runs listing missing input names:\n%s", stdout)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	runs, err := st.ListRuns()
	st.Close()
	if err != nil || len(runs) != 1 {
		t.Fatalf("ListRuns: %v (%d runs)", err, len(runs))
	}

	stdout, err = execute(t, "runs", "--store", dbPath, "--id", runs[0].ID)
	if err != nil {
		t.Fatalf("runs --id: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Policy Impact Report") {
		t.Errorf("single-run view missing report:\n%s", stdout)
	}
}

func TestInspectCommand(t *testing.T) {
	panelPath, _ := buildInputs(t)

	stdout, err := execute(t, "inspect", "--panel", panelPath)
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, stdout)
	}
	for _, want := range []string{"Periods:  11 (2000–2010)", "EDGAR_emissions", "outcome", "period"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}
