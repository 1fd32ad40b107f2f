package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/mlfqs-predict/sim"
)

// scenarioCmd prints the built-in scenario as YAML, ready to edit and pass
// back with --scenario.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Print the built-in mlfqs-c2 scenario as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeScenario(cmd, sim.DefaultScenario()); err != nil {
			logrus.Fatalf("Writing scenario: %v", err)
		}
	},
}

func writeScenario(cmd *cobra.Command, sc *sim.Scenario) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}
