package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/auditlog"
	"github.com/custodia-dev/custodia/internal/impex"
	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/store"
)

func newImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import banks or positions from a spreadsheet file",
	}
	importCmd.AddCommand(newImportBanksCommand())
	importCmd.AddCommand(newImportPositionsCommand())
	return importCmd
}

func newImportBanksCommand() *cobra.Command {
	var merge string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "banks <file>",
		Short: "Import banks from a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := decodeFile(args[0])
			if err != nil {
				return err
			}

			res := impex.ParseBanks(text)
			printBankReview(cmd.OutOrStdout(), res)
			if err := checkClean(len(res.Errors)); err != nil || dryRun {
				return err
			}

			strategy, err := store.ParseStrategy(merge)
			if err != nil {
				return err
			}
			_, st, dataDir, err := openStore(cmd)
			if err != nil {
				return err
			}
			n, err := st.ImportBanks(res.Success, strategy)
			if err != nil {
				return err
			}
			if err := logImport(dataDir, "banks", args[0], strategy, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bank(s) (%s)\n", n, strategy)
			return nil
		},
	}

	addImportFlags(cmd, &merge, &dryRun)
	return cmd
}

func newImportPositionsCommand() *cobra.Command {
	var bankID int
	var merge string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "positions <file>",
		Short: "Import positions for one bank from a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, dataDir, err := openStore(cmd)
			if err != nil {
				return err
			}
			if _, ok, err := st.Bank(bankID); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("bank %d does not exist", bankID)
			}

			text, err := decodeFile(args[0])
			if err != nil {
				return err
			}

			res := impex.ParsePositions(text, bankID)
			printPositionReview(cmd.OutOrStdout(), res)
			if err := checkClean(len(res.Errors)); err != nil || dryRun {
				return err
			}

			strategy, err := store.ParseStrategy(merge)
			if err != nil {
				return err
			}
			n, err := st.ImportPositions(bankID, res.Success, strategy)
			if err != nil {
				return err
			}
			if err := logImport(dataDir, "positions", args[0], strategy, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d position(s) for bank %d (%s)\n", n, bankID, strategy)
			return nil
		},
	}

	cmd.Flags().IntVar(&bankID, "bank", 0, "owning bank ID (required)")
	_ = cmd.MarkFlagRequired("bank")
	addImportFlags(cmd, &merge, &dryRun)
	return cmd
}

func addImportFlags(cmd *cobra.Command, merge *string, dryRun *bool) {
	cmd.Flags().StringVar(merge, "merge", "", "merge strategy: replace or append (required unless --dry-run)")
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "validate and review without persisting")
}

// decodeFile turns an input file into document text via the decoder registry.
func decodeFile(path string) (string, error) {
	decoder, err := impex.DefaultRegistry().Get(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return decoder.Decode(f)
}

// checkClean blocks persistence while any row error is outstanding.
func checkClean(errCount int) error {
	if errCount > 0 {
		return fmt.Errorf("import blocked: %d row(s) failed validation, fix them and retry", errCount)
	}
	return nil
}

func logImport(dataDir, kind, source string, strategy store.Strategy, accepted int) error {
	return auditlog.Append(dataDir, auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Source:    filepath.Base(source),
		Strategy:  string(strategy),
		Accepted:  accepted,
	})
}

func printBankReview(w io.Writer, res impex.ParseResult[model.Bank]) {
	for _, row := range res.AllRows {
		if row.Failed() {
			fmt.Fprintf(w, "row %d: ERROR %s (name=%q)\n", row.Row, row.Err, row.Raw["name"])
			continue
		}
		fmt.Fprintf(w, "row %d: ok %s\n", row.Row, row.Data.Name)
	}
	fmt.Fprintf(w, "%d accepted, %d failed\n", len(res.Success), len(res.Errors))
}

func printPositionReview(w io.Writer, res impex.ParseResult[model.Position]) {
	for _, row := range res.AllRows {
		if row.Failed() {
			fmt.Fprintf(w, "row %d: ERROR %s (isin=%q ticker=%q)\n",
				row.Row, row.Err, row.Raw["isin"], row.Raw["ticker"])
			continue
		}
		fmt.Fprintf(w, "row %d: ok %s %s x %s\n", row.Row, row.Data.Ticker, row.Data.Quantity, row.Data.PurchasePrice)
	}
	fmt.Fprintf(w, "%d accepted, %d failed\n", len(res.Success), len(res.Errors))
}
