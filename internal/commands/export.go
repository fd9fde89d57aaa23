package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/impex"
	"github.com/custodia-dev/custodia/internal/model"
)

func newExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export banks or positions to a spreadsheet file",
	}
	exportCmd.AddCommand(newExportBanksCommand())
	exportCmd.AddCommand(newExportPositionsCommand())
	return exportCmd
}

func newExportBanksCommand() *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Export all banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			banks, err := st.Banks()
			if err != nil {
				return err
			}

			var data []byte
			var filename string
			switch format {
			case "csv":
				text, name := impex.ExportBanks(banks)
				data, filename = []byte(text), name
			case "xlsx":
				data, filename, err = impex.ExportBanksXLSX(banks)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (expected csv or xlsx)", format)
			}
			return writeExport(cmd, outDir, filename, data)
		},
	}

	addExportFlags(cmd, &format, &outDir)
	return cmd
}

func newExportPositionsCommand() *cobra.Command {
	var bankID int
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Export positions, optionally for one bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}

			label := "positions"
			var positions []model.Position
			if bankID > 0 {
				bank, ok, err := st.Bank(bankID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("bank %d does not exist", bankID)
				}
				label = "positions-" + bank.Name
				positions, err = st.PositionsByBank(bankID)
				if err != nil {
					return err
				}
			} else {
				positions, err = st.Positions()
				if err != nil {
					return err
				}
			}

			var data []byte
			var filename string
			switch format {
			case "csv":
				text, name := impex.ExportPositions(positions, label)
				data, filename = []byte(text), name
			case "xlsx":
				data, filename, err = impex.ExportPositionsXLSX(positions, label)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (expected csv or xlsx)", format)
			}
			return writeExport(cmd, outDir, filename, data)
		},
	}

	cmd.Flags().IntVar(&bankID, "bank", 0, "only positions of this bank")
	addExportFlags(cmd, &format, &outDir)
	return cmd
}

func addExportFlags(cmd *cobra.Command, format, outDir *string) {
	cmd.Flags().StringVar(format, "format", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVar(outDir, "out", ".", "output directory")
}

func writeExport(cmd *cobra.Command, outDir, filename string, data []byte) error {
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
