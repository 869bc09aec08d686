package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNoAmount = errors.New("no amount")

var hundred = decimal.NewFromInt(100)

// parseAmount reads a signed amount written with decimalSep into minor units.
// The other of '.' and ',' is taken as a thousands separator. Currency
// symbols, spaces and other decorations are ignored.
// "1.234,56" with ',' is 123456; "-1,234.56" with '.' is -123456.
func parseAmount(s string, decimalSep rune) (int64, error) {
	var b strings.Builder

	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+':
			b.WriteRune(r)
		case r == decimalSep:
			b.WriteRune('.')
		}
	}

	clean := b.String()
	if clean == "" || clean == "-" || clean == "+" {
		return 0, errNoAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}
