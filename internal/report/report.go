// Package report derives read-only views over the sale and payment logs for
// display. Nothing here mutates state.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/sale"
)

// SalesByMonth returns the sales whose date falls in the given calendar
// month, expressed as "YYYY-MM".
func SalesByMonth(sales []sale.Sale, month string) []sale.Sale {
	var matched []sale.Sale

	for _, s := range sales {
		if s.Date.Format("2006-01") == month {
			matched = append(matched, s)
		}
	}

	return matched
}

// SalesBetween returns the sales whose date-only portion falls inside the
// inclusive range. A zero start or end leaves that side open.
func SalesBetween(sales []sale.Sale, start, end time.Time) []sale.Sale {
	var matched []sale.Sale

	for _, s := range sales {
		day := s.Date.Format(time.DateOnly)

		if !start.IsZero() && day < start.Format(time.DateOnly) {
			continue
		}

		if !end.IsZero() && day > end.Format(time.DateOnly) {
			continue
		}

		matched = append(matched, s)
	}

	return matched
}

// SalesByClient returns the sales whose recorded client name contains the
// term, case-insensitively.
func SalesByClient(sales []sale.Sale, term string) []sale.Sale {
	if term == "" {
		return sales
	}

	term = strings.ToLower(term)

	var matched []sale.Sale

	for _, s := range sales {
		if strings.Contains(strings.ToLower(s.ClientName), term) {
			matched = append(matched, s)
		}
	}

	return matched
}

// PaymentsByClient returns the payments whose recorded client name contains
// the term, case-insensitively.
func PaymentsByClient(payments []sale.Payment, term string) []sale.Payment {
	if term == "" {
		return payments
	}

	term = strings.ToLower(term)

	var matched []sale.Payment

	for _, p := range payments {
		if strings.Contains(strings.ToLower(p.ClientName), term) {
			matched = append(matched, p)
		}
	}

	return matched
}

// Months lists the distinct "YYYY-MM" months present in the sale log, newest
// first.
func Months(sales []sale.Sale) []string {
	seen := make(map[string]struct{})

	var months []string

	for _, s := range sales {
		m := s.Date.Format("2006-01")
		if _, ok := seen[m]; ok {
			continue
		}

		seen[m] = struct{}{}

		months = append(months, m)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Summary aggregates the dashboard figures. Income and Operations cover the
// sales passed in (usually pre-filtered to a period); OutstandingDebt and
// StockValue reflect the current state of the roster and catalog.
type Summary struct {
	Income          int64
	Operations      int
	CreditSales     int
	OutstandingDebt int64
	StockValue      int64
}

func Summarize(sales []sale.Sale, clients []client.Client, products []catalog.Product) Summary {
	var sum Summary

	for _, s := range sales {
		sum.Income += s.TotalPrice
		sum.Operations++

		if s.Type == sale.TypeCredit {
			sum.CreditSales++
		}
	}

	for _, c := range clients {
		sum.OutstandingDebt += c.Debt
	}

	for _, p := range products {
		sum.StockValue += p.Price * int64(p.Stock)
	}

	return sum
}
