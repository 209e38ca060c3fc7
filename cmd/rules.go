package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/engine"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every rule a default engine configuration will run",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New(engine.Options{})
		w := cmd.OutOrStdout()
		for _, rule := range eng.Registry().List() {
			status := "enabled"
			if !rule.Enabled {
				status = "disabled"
			}
			fmt.Fprintf(w, "%-8s %-30s %-16s %-9s %s\n", rule.RuleID, rule.Name, rule.Category, rule.Severity, status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
