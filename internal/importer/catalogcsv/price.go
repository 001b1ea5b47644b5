package catalogcsv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func trimCell(s string) string {
	return strings.TrimSpace(s)
}

// parsePrice parses a spreadsheet price cell into cents. Handles a leading
// currency sign and both separator conventions: "1,234.56" and "1.234,56"
// (and plain "1234.56" / "1234,56").
func parsePrice(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if clean == "" {
		return 0, fmt.Errorf("empty price")
	}

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	switch {
	case lastComma > lastDot && lastDot == -1 && len(clean)-lastComma-1 == 3:
		// "1,234" style: comma groups thousands.
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma > lastDot:
		// Comma is the decimal separator; dots are thousands.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	default:
		// Dot is the decimal separator (or there is none); commas are thousands.
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("negative price")
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
