package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/impex"
	"github.com/custodia-dev/custodia/internal/tabular"
)

func newBankCommand() *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage custodian banks and brokers",
	}
	bankCmd.AddCommand(newBankAddCommand())
	bankCmd.AddCommand(newBankListCommand())
	return bankCmd
}

func newBankAddCommand() *cobra.Command {
	var name, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a bank or broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			rec, err := impex.ValidateBankRow(tabular.Row{"name": name, "notes": notes})
			if err != nil {
				return err
			}
			bank, err := st.AddBank(rec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added bank %d: %s\n", bank.ID, bank.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "bank name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newBankListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			banks, err := st.Banks()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNOTES")
			for _, b := range banks {
				fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Name, b.Notes)
			}
			return w.Flush()
		},
	}
}
