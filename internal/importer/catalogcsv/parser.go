package catalogcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hvaldez/gestorpro/internal/catalog"
	enc "github.com/hvaldez/gestorpro/internal/encoding"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// Excel exports use ';' in locales with a decimal comma and ',' in the
	// rest; try both before giving up.
	for _, comma := range []rune{';', ','} {
		rows, err := readRows(raw, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
	}

	return nil, fmt.Errorf("no matching catalog format found: expected Nombre/Precio/Stock or Name/Price/Stock columns")
}

func readRows(raw []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// detectProfile scans rows for a header matching a known profile. Returns
// the profile, the column index map, and the header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := indexRow(row)

		if p := matchProfile(cols); p != nil {
			return p, cols, rowIdx
		}
	}

	return nil, nil, 0
}

// parseRows extracts products from data rows. headerRowNum is the 0-based
// index of the header in the original file, used for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]catalog.CreateParams, error) {
	nameIdx := cols[p.NameCol]
	priceIdx := cols[p.PriceCol]
	stockIdx := cols[p.StockCol]

	descIdx := -1
	if i, ok := cols[p.DescCol]; ok {
		descIdx = i
	}

	var params []catalog.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		name := cellValue(row, nameIdx)
		if name == "" {
			// Blank or footer row.
			continue
		}

		price, err := parsePrice(cellValue(row, priceIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price: %w", rowNum, err)
		}

		stock, err := strconv.Atoi(cellValue(row, stockIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid stock: %w", rowNum, err)
		}

		if stock < 0 {
			return nil, fmt.Errorf("row %d: negative stock", rowNum)
		}

		params = append(params, catalog.CreateParams{
			Name:        name,
			Price:       price,
			Stock:       stock,
			Description: cellValue(row, descIdx),
		})
	}

	return params, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return trimCell(row[idx])
}
