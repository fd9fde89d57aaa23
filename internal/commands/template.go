package commands

import (
	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/impex"
)

func newTemplateCommand() *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Write example import documents",
	}

	var outDir string
	templateCmd.PersistentFlags().StringVar(&outDir, "out", ".", "output directory")

	templateCmd.AddCommand(&cobra.Command{
		Use:   "banks",
		Short: "Write the banks import template",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, filename := impex.BankTemplate()
			return writeExport(cmd, outDir, filename, []byte(text))
		},
	})
	templateCmd.AddCommand(&cobra.Command{
		Use:   "positions",
		Short: "Write the positions import template",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, filename := impex.PositionTemplate()
			return writeExport(cmd, outDir, filename, []byte(text))
		},
	})

	return templateCmd
}
