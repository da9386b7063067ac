package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Viraj281105/ClimateX/adapters/store"
	"github.com/Viraj281105/ClimateX/internal/config"
	"github.com/Viraj281105/ClimateX/internal/format"
	"github.com/Viraj281105/ClimateX/internal/impact"
	"github.com/Viraj281105/ClimateX/internal/logging"
	"github.com/Viraj281105/ClimateX/internal/panel"
	"github.com/Viraj281105/ClimateX/internal/policy"
)

var impactFlags struct {
	configPath  string
	panelPath   string
	periodCol   string
	policyPath  string
	nameCol     string
	yearCol     string
	confounders []string
	outcomes    []string
	prefixes    []string
	trials      int
	workers     int
	seed        uint64
	output      string
	storePath   string
	top         int
}

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Run the batch causal estimation and write the impact table",
	Long: `Impact drives every (policy, pollutant) pair through isolation,
backdoor-adjusted estimation and placebo refutation, then writes one CSV
row per pair. Per-pair failures become null rows; only structurally
invalid input aborts the run.`,
	RunE: runImpact,
}

func init() {
	f := impactCmd.Flags()
	f.StringVar(&impactFlags.configPath, "config", "", "Run config YAML (flags override file values)")
	f.StringVar(&impactFlags.panelPath, "panel", "", "Panel CSV (one row per period)")
	f.StringVar(&impactFlags.periodCol, "period-column", "Year", "Period column name")
	f.StringVar(&impactFlags.policyPath, "policies", "", "Policy list CSV")
	f.StringVar(&impactFlags.nameCol, "policy-name-column", "Policy", "Policy name column")
	f.StringVar(&impactFlags.yearCol, "policy-year-column", "Year", "Policy enactment year column")
	f.StringSliceVar(&impactFlags.confounders, "confounder", nil, "Confounder column (repeatable)")
	f.StringSliceVar(&impactFlags.outcomes, "outcome", nil, "Explicit outcome column (repeatable; default: discover by prefix)")
	f.StringSliceVar(&impactFlags.prefixes, "outcome-prefix", nil, "Outcome name prefix (repeatable; default EDGAR_,HCB_,PAH_,PCB_,PCDD_)")
	f.IntVar(&impactFlags.trials, "trials", 0, "Placebo permutation trials per pair (default 50)")
	f.IntVar(&impactFlags.workers, "workers", 0, "Worker pool size (default: CPU count)")
	f.Uint64Var(&impactFlags.seed, "seed", 0, "Base seed for refutation permutations")
	f.StringVar(&impactFlags.output, "out", "", "Impact table CSV output path")
	f.StringVar(&impactFlags.storePath, "store", "", "SQLite store path for run history (empty = disabled)")
	f.IntVar(&impactFlags.top, "top", 15, "Significant effects shown in the summary (0 = all)")
}

// resolveConfig merges the optional config file with flag overrides.
func resolveConfig() (*config.RunConfig, error) {
	cfg := &config.RunConfig{
		PeriodColumn: impactFlags.periodCol,
		PolicyName:   impactFlags.nameCol,
		PolicyYear:   impactFlags.yearCol,
	}
	if impactFlags.configPath != "" {
		loaded, err := config.Load(impactFlags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if impactFlags.panelPath != "" {
		cfg.PanelPath = impactFlags.panelPath
	}
	if impactFlags.policyPath != "" {
		cfg.PolicyPath = impactFlags.policyPath
	}
	if len(impactFlags.confounders) > 0 {
		cfg.Confounders = impactFlags.confounders
	}
	if len(impactFlags.outcomes) > 0 {
		cfg.Outcomes = impactFlags.outcomes
	}
	if len(impactFlags.prefixes) > 0 {
		cfg.OutcomePrefixes = impactFlags.prefixes
	}
	if impactFlags.trials > 0 {
		cfg.Trials = impactFlags.trials
	}
	if impactFlags.workers > 0 {
		cfg.Workers = impactFlags.workers
	}
	if impactFlags.seed != 0 {
		cfg.Seed = impactFlags.seed
	}
	if impactFlags.output != "" {
		cfg.OutputPath = impactFlags.output
	}
	if impactFlags.storePath != "" {
		cfg.StorePath = impactFlags.storePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runImpact(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger := logging.New("cli")

	p, err := loadPanel(cfg.PanelPath, cfg.PeriodColumn)
	if err != nil {
		return err
	}
	policies, err := loadPolicies(cfg.PolicyPath, cfg.PolicyName, cfg.PolicyYear)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	runner := impact.NewRunner(p, policies, impact.Options{
		Confounders:     cfg.Confounders,
		Outcomes:        cfg.Outcomes,
		OutcomePrefixes: cfg.OutcomePrefixes,
		Trials:          cfg.Trials,
		Workers:         cfg.Workers,
		Seed:            cfg.Seed,
	})
	table, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	if err := impact.WriteCSVFile(cfg.OutputPath, table); err != nil {
		return err
	}
	logger.Info("impact table written", "path", cfg.OutputPath,
		"rows", len(table.Records), "took", format.FmtDuration(time.Since(started)))

	if cfg.StorePath != "" {
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		run := &store.Run{
			PanelFile:  filepath.Base(cfg.PanelPath),
			PolicyFile: filepath.Base(cfg.PolicyPath),
			Seed:       cfg.Seed,
			Trials:     runner.Trials(),
		}
		if err := st.SaveRun(run, table); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		logger.Info("run persisted", "id", run.ID, "store", cfg.StorePath)
	}

	fmt.Fprint(cmd.OutOrStdout(), impact.FormatReport(table, impactFlags.top))
	return nil
}

func loadPanel(path, periodCol string) (*panel.Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open panel: %w", err)
	}
	defer f.Close()
	p, err := panel.LoadCSV(f, periodCol)
	if err != nil {
		return nil, fmt.Errorf("load panel %s: %w", path, err)
	}
	return p, nil
}

func loadPolicies(path, nameCol, yearCol string) ([]policy.Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policy list: %w", err)
	}
	defer f.Close()
	policies, err := policy.LoadCSV(f, nameCol, yearCol)
	if err != nil {
		return nil, fmt.Errorf("load policy list %s: %w", path, err)
	}
	return policies, nil
}
