package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/halint/internal/domain"
)

const rulesLongDescription = `List every category halint can report with its default severity and
description. Categories reported by the scanner can be silenced through
filters and NOLINT comments like any other.`

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule categories",
		Long:  rulesLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.ListRules(domain.RulesArgs{})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
