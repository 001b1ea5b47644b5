// Package catalogcsv reads product catalog spreadsheets exported as CSV.
// Header names are matched against known profiles (Spanish and English
// column sets) so the same endpoint accepts whichever a shop's spreadsheet
// uses; the delimiter is sniffed from the header row.
package catalogcsv

import (
	"strings"
)

// Profile names the columns one spreadsheet layout uses. The three core
// columns are required; the description column is optional.
type Profile struct {
	NameCol  string
	PriceCol string
	StockCol string
	DescCol  string // optional; empty cell or missing column is fine
}

var profiles = []Profile{
	{NameCol: "Nombre", PriceCol: "Precio", StockCol: "Stock", DescCol: "Descripción"},
	{NameCol: "Nombre", PriceCol: "Precio", StockCol: "Existencias", DescCol: "Descripción"},
	{NameCol: "Name", PriceCol: "Price", StockCol: "Stock", DescCol: "Description"},
}

func (p *Profile) requiredCols() []string {
	return []string{p.NameCol, p.PriceCol, p.StockCol}
}

// colIndex maps column names to their position in the header row.
type colIndex map[string]int

func indexRow(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

func matchProfile(cols colIndex) *Profile {
	for i := range profiles {
		ok := true

		for _, name := range profiles[i].requiredCols() {
			if _, found := cols[name]; !found {
				ok = false
				break
			}
		}

		if ok {
			return &profiles[i]
		}
	}

	return nil
}
