package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/mlfqs-predict/sim"
	"github.com/inference-sim/mlfqs-predict/sim/trace"
)

var (
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario; empty uses the built-in mlfqs-c2 model
	usageModel   string // Arithmetic used to carry recent_cpu
	outputFormat string // Trace output format
	showSummary  bool   // Append a summary after the trace
)

// rootCmd runs the prediction; with no flags it prints the mlfqs-c2 trace.
var rootCmd = &cobra.Command{
	Use:   "mlfqs-predict",
	Short: "Predict which thread an MLFQS scheduler runs at each quantum",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !sim.IsValidUsageModel(usageModel) {
			logrus.Fatalf("Unknown arithmetic %q; valid: %s", usageModel, strings.Join(sim.ValidUsageModelNames(), ", "))
		}
		if !trace.IsValidFormat(outputFormat) {
			logrus.Fatalf("Unknown output format %q; valid: tuple, table, json, yaml", outputFormat)
		}

		sc, err := resolveScenario(scenarioPath, usageModel)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		if err := runPrediction(cmd.OutOrStdout(), sc, usageModel, trace.Format(outputFormat), showSummary); err != nil {
			logrus.Fatalf("Writing prediction: %v", err)
		}
	},
}

// resolveScenario loads the scenario at path, or returns the built-in one
// when path is empty, and checks it fits the chosen usage model.
func resolveScenario(path, model string) (*sim.Scenario, error) {
	sc := sim.DefaultScenario()
	if path != "" {
		var err error
		if sc, err = sim.LoadScenario(path); err != nil {
			return nil, fmt.Errorf("loading scenario: %w", err)
		}
	}
	if err := sc.ValidateFor(model); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return sc, nil
}

// runPrediction simulates sc and writes the trace (and optionally its summary) to w.
func runPrediction(w io.Writer, sc *sim.Scenario, model string, format trace.Format, summary bool) error {
	logrus.Infof("Starting prediction %q: %d threads, %d iterations, quantum=%d ticks, load_avg=%v, arithmetic=%s",
		sc.Name, len(sc.Threads), sc.Iterations, sc.QuantumTicks, sc.LoadAvg, model)

	s := sim.NewSimulator(sc, model)
	pt := s.Run()
	render := trace.Render
	if summary {
		render = trace.RenderWithSummary
	}
	if err := render(w, format, pt); err != nil {
		return err
	}

	logrus.Info("Prediction complete.")
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario (default: built-in mlfqs-c2 model)")
	rootCmd.Flags().StringVar(&usageModel, "arithmetic", sim.UsageModelFloat, "recent_cpu arithmetic (float, fixed-point)")
	rootCmd.Flags().StringVar(&outputFormat, "format", string(trace.FormatTuple), "Output format (tuple, table, json, yaml)")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a summary of run counts and overrides after the trace")

	// Attach `scenario` as a subcommand to `root`
	rootCmd.AddCommand(scenarioCmd)
}
