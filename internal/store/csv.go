package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-dev/custodia/internal/model"
)

// The store keeps machine-written CSV files with fixed positional columns.
// This is a different concern from the import/export dialect in impex: store
// files always carry identifiers and timestamps and are never shown to users.

const (
	bankNumFields  = 4
	bankColID      = 0
	bankColName    = 1
	bankColNotes   = 2
	bankColCreated = 3
)

const (
	posNumFields  = 13
	posColID      = 0
	posColBankID  = 1
	posColISIN    = 2
	posColTicker  = 3
	posColType    = 4
	posColDate    = 5
	posColQty     = 6
	posColPrice   = 7
	posColCcy     = 8
	posColNotes   = 9
	posColNominal = 10
	posColCoupon  = 11
	posColCreated = 12
)

const dateFormat = "2006-01-02"

// ReadBanks reads all banks from a banks.csv reader.
func ReadBanks(r io.Reader) ([]model.Bank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bankNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading banks CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var banks []model.Bank
	for i, rec := range records[1:] {
		bank, err := UnmarshalBank(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		banks = append(banks, bank)
	}
	return banks, nil
}

// WriteBanks writes banks to a banks.csv writer (including header).
func WriteBanks(w io.Writer, banks []model.Bank) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "notes", "created_at"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, bank := range banks {
		if err := cw.Write(MarshalBank(bank)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalBank converts a Bank to a CSV row.
func MarshalBank(b model.Bank) []string {
	row := make([]string, bankNumFields)
	row[bankColID] = strconv.Itoa(b.ID)
	row[bankColName] = b.Name
	row[bankColNotes] = b.Notes
	row[bankColCreated] = b.CreatedAt.UTC().Format(time.RFC3339)
	return row
}

// UnmarshalBank converts a CSV row to a Bank.
func UnmarshalBank(record []string) (model.Bank, error) {
	if len(record) != bankNumFields {
		return model.Bank{}, fmt.Errorf("expected %d fields, got %d", bankNumFields, len(record))
	}

	id, err := strconv.Atoi(record[bankColID])
	if err != nil {
		return model.Bank{}, fmt.Errorf("parsing id %q: %w", record[bankColID], err)
	}
	created, err := time.Parse(time.RFC3339, record[bankColCreated])
	if err != nil {
		return model.Bank{}, fmt.Errorf("parsing created_at %q: %w", record[bankColCreated], err)
	}

	return model.Bank{
		ID:        id,
		Name:      record[bankColName],
		Notes:     record[bankColNotes],
		CreatedAt: created,
	}, nil
}

// ReadPositions reads all positions from a positions.csv reader.
func ReadPositions(r io.Reader) ([]model.Position, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = posNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading positions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var positions []model.Position
	for i, rec := range records[1:] {
		pos, err := UnmarshalPosition(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// WritePositions writes positions to a positions.csv writer (including header).
func WritePositions(w io.Writer, positions []model.Position) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{
		"id", "bank_id", "isin", "ticker", "asset_type", "purchase_date",
		"quantity", "purchase_price", "currency", "notes",
		"nominal_value", "coupon_rate", "created_at",
	}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, pos := range positions {
		if err := cw.Write(MarshalPosition(pos)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalPosition converts a Position to a CSV row.
func MarshalPosition(p model.Position) []string {
	row := make([]string, posNumFields)
	row[posColID] = strconv.Itoa(p.ID)
	row[posColBankID] = strconv.Itoa(p.BankID)
	row[posColISIN] = p.ISIN
	row[posColTicker] = p.Ticker
	row[posColType] = string(p.AssetType)
	row[posColDate] = p.PurchaseDate.Format(dateFormat)
	row[posColQty] = p.Quantity.String()
	row[posColPrice] = p.PurchasePrice.String()
	row[posColCcy] = string(p.Currency)
	row[posColNotes] = p.Notes
	if p.NominalValue.Valid {
		row[posColNominal] = p.NominalValue.Decimal.String()
	}
	if p.CouponRate.Valid {
		row[posColCoupon] = p.CouponRate.Decimal.String()
	}
	row[posColCreated] = p.CreatedAt.UTC().Format(time.RFC3339)
	return row
}

// UnmarshalPosition converts a CSV row to a Position.
func UnmarshalPosition(record []string) (model.Position, error) {
	if len(record) != posNumFields {
		return model.Position{}, fmt.Errorf("expected %d fields, got %d", posNumFields, len(record))
	}

	id, err := strconv.Atoi(record[posColID])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing id %q: %w", record[posColID], err)
	}
	bankID, err := strconv.Atoi(record[posColBankID])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing bank_id %q: %w", record[posColBankID], err)
	}
	date, err := time.Parse(dateFormat, record[posColDate])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing purchase_date %q: %w", record[posColDate], err)
	}
	qty, err := decimal.NewFromString(record[posColQty])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing quantity %q: %w", record[posColQty], err)
	}
	price, err := decimal.NewFromString(record[posColPrice])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing purchase_price %q: %w", record[posColPrice], err)
	}
	created, err := time.Parse(time.RFC3339, record[posColCreated])
	if err != nil {
		return model.Position{}, fmt.Errorf("parsing created_at %q: %w", record[posColCreated], err)
	}

	pos := model.Position{
		ID:            id,
		BankID:        bankID,
		ISIN:          record[posColISIN],
		Ticker:        record[posColTicker],
		AssetType:     model.AssetType(record[posColType]),
		PurchaseDate:  date,
		Quantity:      qty,
		PurchasePrice: price,
		Currency:      model.Currency(record[posColCcy]),
		Notes:         record[posColNotes],
		CreatedAt:     created,
	}

	if record[posColNominal] != "" {
		nominal, err := decimal.NewFromString(record[posColNominal])
		if err != nil {
			return model.Position{}, fmt.Errorf("parsing nominal_value %q: %w", record[posColNominal], err)
		}
		pos.NominalValue = decimal.NewNullDecimal(nominal)
	}
	if record[posColCoupon] != "" {
		coupon, err := decimal.NewFromString(record[posColCoupon])
		if err != nil {
			return model.Position{}, fmt.Errorf("parsing coupon_rate %q: %w", record[posColCoupon], err)
		}
		pos.CouponRate = decimal.NewNullDecimal(coupon)
	}
	return pos, nil
}
