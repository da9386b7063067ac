// climatex is the causal policy-impact CLI: it estimates the
// confounder-adjusted effect of each policy's enactment on each
// pollutant trajectory in an annual panel, and writes the impact table
// downstream services consume.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Viraj281105/ClimateX/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "climatex",
	Short: "Causal policy-impact estimation over annual pollution panels",
	Long: "ClimateX estimates, for every (policy, pollutant) pair, the\n" +
		"backdoor-adjusted treatment effect of the policy's enactment with an\n" +
		"estimate p-value and a placebo-permutation p-value.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
