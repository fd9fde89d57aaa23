package impex

import (
	"errors"
	"strings"

	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/tabular"
)

// BankHeader is the column order for bank documents.
var BankHeader = []string{"name", "notes"}

// ValidateBankRow converts one raw row into a Bank. The only contract is a
// non-empty name; notes pass through trimmed and may be empty.
func ValidateBankRow(raw tabular.Row) (model.Bank, error) {
	name := strings.TrimSpace(raw["name"])
	if name == "" {
		return model.Bank{}, errors.New("name is required")
	}
	return model.Bank{
		Name:  name,
		Notes: strings.TrimSpace(raw["notes"]),
	}, nil
}

// ParseBanks parses a whole banks document, classifying every data row as
// accepted or failed without aborting the batch.
func ParseBanks(text string) ParseResult[model.Bank] {
	return parseDocument(text, ValidateBankRow, normalizeBankRow)
}

func normalizeBankRow(raw tabular.Row) tabular.Row {
	return tabular.Row{
		"name":  strings.TrimSpace(raw["name"]),
		"notes": strings.TrimSpace(raw["notes"]),
	}
}
