package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for persistence calls.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// FormatMoney formats an amount stored as cents.
func FormatMoney(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseMoney parses a user-typed amount ("12.50", "$1250.00") into cents.
func ParseMoney(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if clean == "" {
		return 0, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// ParseCount parses a non-negative integer form field.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}

	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}

	return n, nil
}

func validateMoney(s string) error {
	_, err := ParseMoney(s)
	return err
}

func validateOptionalMoney(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := ParseMoney(s)

	return err
}

func validateCount(s string) error {
	_, err := ParseCount(s)
	return err
}
