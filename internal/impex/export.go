package impex

import (
	"strings"
	"time"

	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/tabular"
)

func bankRow(b model.Bank) tabular.Row {
	return tabular.Row{
		"name":  b.Name,
		"notes": b.Notes,
	}
}

func positionRow(p model.Position) tabular.Row {
	row := tabular.Row{
		"isin":          p.ISIN,
		"ticker":        p.Ticker,
		"assetType":     string(p.AssetType),
		"purchaseDate":  p.PurchaseDate.Format(dateFormat),
		"quantity":      p.Quantity.String(),
		"purchasePrice": p.PurchasePrice.String(),
		"currency":      string(p.Currency),
		"notes":         p.Notes,
	}
	if p.NominalValue.Valid {
		row["nominalValue"] = p.NominalValue.Decimal.String()
	}
	if p.CouponRate.Valid {
		row["couponRate"] = p.CouponRate.Decimal.String()
	}
	return row
}

// ExportBanks renders banks as a downloadable document plus its filename.
func ExportBanks(banks []model.Bank) (text, filename string) {
	rows := make([]tabular.Row, len(banks))
	for i, b := range banks {
		rows[i] = bankRow(b)
	}
	return tabular.Write(BankHeader, rows), ExportFilename("banks", "csv")
}

// ExportPositions renders positions as a downloadable document plus its
// filename. The label identifies the export, typically the owning bank's
// name or plain "positions".
func ExportPositions(positions []model.Position, label string) (text, filename string) {
	rows := make([]tabular.Row, len(positions))
	for i, p := range positions {
		rows[i] = positionRow(p)
	}
	return tabular.Write(PositionHeader, rows), ExportFilename(label, "csv")
}

// ExportFilename builds "custodia-<label>-<YYYY-MM-DD>.<ext>" with the label
// sanitized to lower-case letters, digits and dashes.
func ExportFilename(label, ext string) string {
	return "custodia-" + sanitizeLabel(label) + "-" + time.Now().Format(dateFormat) + "." + ext
}

func sanitizeLabel(label string) string {
	var b strings.Builder
	lastDash := true // also swallows leading separators
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "export"
	}
	return out
}
