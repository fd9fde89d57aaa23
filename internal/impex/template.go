package impex

// Template documents offered for download so users can see the expected
// columns. These are literal sample rows, not derived from any live record.

const bankTemplate = `name,notes
Trade Republic,Main broker
DKB,"Savings, retirement"
`

const positionTemplate = `isin,ticker,assetType,purchaseDate,quantity,purchasePrice,currency,notes,nominalValue,couponRate
US0378331005,AAPL,stock,2024-01-15,10,185.50,USD,Long term holding,,
IE00B4L5Y983,IWDA,etf,2024-02-01,25,88.10,EUR,Core position,,
DE0001102580,BND26,bond,2024-03-10,5,98.75,EUR,,1000,2.6
`

// BankTemplate returns the example banks document and its filename.
func BankTemplate() (text, filename string) {
	return bankTemplate, ExportFilename("banks-template", "csv")
}

// PositionTemplate returns the example positions document and its filename.
func PositionTemplate() (text, filename string) {
	return positionTemplate, ExportFilename("positions-template", "csv")
}
