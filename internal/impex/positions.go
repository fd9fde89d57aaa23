package impex

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/tabular"
)

// PositionHeader is the column order for position documents.
var PositionHeader = []string{
	"isin", "ticker", "assetType", "purchaseDate",
	"quantity", "purchasePrice", "currency",
	"notes", "nominalValue", "couponRate",
}

const dateFormat = "2006-01-02"

// requiredPositionFields in reporting order: the first missing one is the
// one named in the row error.
var requiredPositionFields = []string{
	"isin", "ticker", "assetType", "purchaseDate",
	"quantity", "purchasePrice", "currency",
}

// ValidatePositionRow converts one raw row into a Position owned by bankID.
// Bonds must carry a positive nominalValue and a non-negative couponRate.
// For stocks and ETFs those two columns are informational: an unparsable
// value is dropped rather than failing the row.
func ValidatePositionRow(raw tabular.Row, bankID int) (model.Position, error) {
	for _, field := range requiredPositionFields {
		if strings.TrimSpace(raw[field]) == "" {
			return model.Position{}, fmt.Errorf("%s is required", field)
		}
	}

	assetType := model.AssetType(strings.ToLower(strings.TrimSpace(raw["assetType"])))
	switch assetType {
	case model.AssetStock, model.AssetETF, model.AssetBond:
	default:
		return model.Position{}, fmt.Errorf("assetType %q is not one of stock, etf, bond", strings.TrimSpace(raw["assetType"]))
	}

	currency := model.Currency(strings.ToUpper(strings.TrimSpace(raw["currency"])))
	switch currency {
	case model.CurrencyEUR, model.CurrencyUSD:
	default:
		return model.Position{}, fmt.Errorf("currency %q is not one of EUR, USD", strings.TrimSpace(raw["currency"]))
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(raw["quantity"]))
	if err != nil || !quantity.IsPositive() {
		return model.Position{}, fmt.Errorf("quantity must be a positive number, got %q", strings.TrimSpace(raw["quantity"]))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(raw["purchasePrice"]))
	if err != nil || !price.IsPositive() {
		return model.Position{}, fmt.Errorf("purchasePrice must be a positive number, got %q", strings.TrimSpace(raw["purchasePrice"]))
	}

	purchaseDate, err := time.Parse(dateFormat, strings.TrimSpace(raw["purchaseDate"]))
	if err != nil {
		return model.Position{}, fmt.Errorf("purchaseDate %q is not a valid date (expected YYYY-MM-DD)", strings.TrimSpace(raw["purchaseDate"]))
	}

	pos := model.Position{
		BankID:        bankID,
		ISIN:          strings.ToUpper(strings.TrimSpace(raw["isin"])),
		Ticker:        strings.ToUpper(strings.TrimSpace(raw["ticker"])),
		AssetType:     assetType,
		PurchaseDate:  purchaseDate,
		Quantity:      quantity,
		PurchasePrice: price,
		Currency:      currency,
		Notes:         strings.TrimSpace(raw["notes"]),
	}

	nominalRaw := strings.TrimSpace(raw["nominalValue"])
	couponRaw := strings.TrimSpace(raw["couponRate"])

	if assetType == model.AssetBond {
		if nominalRaw == "" {
			return model.Position{}, errors.New("nominalValue is required for bond positions")
		}
		nominal, err := decimal.NewFromString(nominalRaw)
		if err != nil || !nominal.IsPositive() {
			return model.Position{}, fmt.Errorf("nominalValue must be a positive number, got %q", nominalRaw)
		}
		if couponRaw == "" {
			return model.Position{}, errors.New("couponRate is required for bond positions")
		}
		coupon, err := decimal.NewFromString(couponRaw)
		if err != nil || coupon.IsNegative() {
			return model.Position{}, fmt.Errorf("couponRate must be a non-negative number, got %q", couponRaw)
		}
		pos.NominalValue = decimal.NewNullDecimal(nominal)
		pos.CouponRate = decimal.NewNullDecimal(coupon)
		return pos, nil
	}

	// Outside the bond context these columns never block a row: keep what
	// parses, drop what doesn't.
	if nominal, err := decimal.NewFromString(nominalRaw); err == nil {
		pos.NominalValue = decimal.NewNullDecimal(nominal)
	}
	if coupon, err := decimal.NewFromString(couponRaw); err == nil {
		pos.CouponRate = decimal.NewNullDecimal(coupon)
	}
	return pos, nil
}

// ParsePositions parses a whole positions document for the given owning
// bank, classifying every data row without aborting the batch.
func ParsePositions(text string, bankID int) ParseResult[model.Position] {
	return parseDocument(text, func(raw tabular.Row) (model.Position, error) {
		return ValidatePositionRow(raw, bankID)
	}, normalizePositionRow)
}

// normalizePositionRow applies the casing and trimming a valid row would get
// so failed rows preview consistently.
func normalizePositionRow(raw tabular.Row) tabular.Row {
	out := make(tabular.Row, len(PositionHeader))
	for _, name := range PositionHeader {
		out[name] = strings.TrimSpace(raw[name])
	}
	out["isin"] = strings.ToUpper(out["isin"])
	out["ticker"] = strings.ToUpper(out["ticker"])
	out["assetType"] = strings.ToLower(out["assetType"])
	out["currency"] = strings.ToUpper(out["currency"])
	return out
}
