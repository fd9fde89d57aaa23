package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/marketdata"
)

const apiKeyEnv = "CUSTODIA_API_KEY"

func newQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <ticker>",
		Short: "Fetch the latest price for a ticker, e.g. AAPL.US",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := openStore(cmd)
			if err != nil {
				return err
			}

			apiKey := cfg.MarketData.APIKey
			if apiKey == "" {
				apiKey = os.Getenv(apiKeyEnv)
			}
			if apiKey == "" {
				return errors.New("no market data API key: set market_data.api_key in custodia.yaml or " + apiKeyEnv)
			}

			provider := &marketdata.EODHDClient{APIKey: apiKey}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			quote, err := provider.Latest(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (as of %s)\n",
				quote.Ticker, quote.Price, quote.Time.Format(time.RFC3339))
			return nil
		},
	}
}
