package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/impex"
	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/tabular"
)

func newPositionCommand() *cobra.Command {
	posCmd := &cobra.Command{
		Use:   "position",
		Short: "Manage buy positions",
	}
	posCmd.AddCommand(newPositionAddCommand())
	posCmd.AddCommand(newPositionListCommand())
	return posCmd
}

func newPositionAddCommand() *cobra.Command {
	var bankID int
	fields := tabular.Row{}
	flagNames := []string{
		"isin", "ticker", "assetType", "purchaseDate",
		"quantity", "purchasePrice", "currency",
		"notes", "nominalValue", "couponRate",
	}
	values := make(map[string]*string, len(flagNames))

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a buy position",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			if _, ok, err := st.Bank(bankID); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("bank %d does not exist", bankID)
			}

			// Flag input goes through the same row validation as imports.
			for name, v := range values {
				fields[name] = *v
			}
			pos, err := impex.ValidatePositionRow(fields, bankID)
			if err != nil {
				return err
			}

			pos, err = st.AddPosition(pos)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added position %d: %s %s @ %s\n",
				pos.ID, pos.Quantity, pos.Ticker, pos.PurchasePrice)
			return nil
		},
	}

	help := map[string]string{
		"isin":          "12-character security identifier",
		"ticker":        "ticker symbol",
		"assetType":     "stock, etf or bond",
		"purchaseDate":  "purchase date (YYYY-MM-DD)",
		"quantity":      "number of units",
		"purchasePrice": "per-unit purchase price",
		"currency":      "EUR or USD",
		"notes":         "free-form notes",
		"nominalValue":  "bond nominal value",
		"couponRate":    "bond coupon rate in percent",
	}
	cmd.Flags().IntVar(&bankID, "bank", 0, "owning bank ID (required)")
	_ = cmd.MarkFlagRequired("bank")
	for _, name := range flagNames {
		values[name] = cmd.Flags().String(name, "", help[name])
	}
	for _, required := range []string{"isin", "ticker", "assetType", "purchaseDate", "quantity", "purchasePrice", "currency"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func newPositionListCommand() *cobra.Command {
	var bankID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}

			var positions []model.Position
			if bankID > 0 {
				positions, err = st.PositionsByBank(bankID)
			} else {
				positions, err = st.Positions()
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBANK\tISIN\tTICKER\tTYPE\tDATE\tQTY\tPRICE\tNOTES")
			for _, p := range positions {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.BankID, p.ISIN, p.Ticker, p.AssetType,
					p.PurchaseDate.Format("2006-01-02"), p.Quantity,
					displayMoney(p), p.Notes)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&bankID, "bank", 0, "only positions of this bank")

	return cmd
}

// displayMoney renders the per-unit purchase price in its currency.
func displayMoney(p model.Position) string {
	cur := money.New(0, string(p.Currency)).Currency()
	return cur.Formatter().Format(p.PurchasePrice.Shift(int32(cur.Fraction)).IntPart())
}
