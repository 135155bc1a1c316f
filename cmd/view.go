package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/halint/internal/domain"
	m "github.com/mouse-blink/halint/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last saved lint report",
		Long:  "View the report saved by the last lint run from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return workflow.View(domain.ViewArgs{
				Reports: m.Path(cfg.Reports),
				Display: cfg.Display(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
