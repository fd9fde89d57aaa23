package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies the security behind a position.
type AssetType string

const (
	AssetStock AssetType = "stock"
	AssetETF   AssetType = "etf"
	AssetBond  AssetType = "bond"
)

// Currency is the settlement currency of a position.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// Position is a single buy position held at a bank.
type Position struct {
	ID            int // assigned by the store
	BankID        int // owning bank, supplied by the caller on import
	ISIN          string
	Ticker        string
	AssetType     AssetType
	PurchaseDate  time.Time // calendar date, midnight UTC
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal // per unit
	Currency      Currency
	Notes         string
	// Required for bonds, informational for stocks and ETFs.
	NominalValue decimal.NullDecimal
	CouponRate   decimal.NullDecimal // percent
	CreatedAt    time.Time
}
