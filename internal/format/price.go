package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/shopspring/decimal"
)

type PriceStyle int

const (
	// PriceSymbol is €12.50.
	PriceSymbol PriceStyle = iota
	// PriceSuffix is 12.50 EUR.
	PriceSuffix
	// PriceComma is 12,5: shortest two-decimal rounding with a comma.
	PriceComma
	// PricePlain is 12.50.
	PricePlain
)

var priceStyles = [...]struct {
	name    string
	pattern *regexp.Regexp
}{
	PriceSymbol: {"euro_symbol", regexp.MustCompile(`^€(\d+\.\d{2})$`)},
	PriceSuffix: {"euro_suffix", regexp.MustCompile(`^(\d+\.\d{2}) EUR$`)},
	PriceComma:  {"comma", regexp.MustCompile(`^(\d+,\d{1,2})$`)},
	PricePlain:  {"plain", regexp.MustCompile(`^(\d+\.\d{2})$`)},
}

// AllPrices lists every declared price style; messy generators draw from it.
func AllPrices() []PriceStyle {
	return []PriceStyle{PriceSymbol, PriceSuffix, PriceComma, PricePlain}
}

func (p PriceStyle) String() string {
	if p < 0 || int(p) >= len(priceStyles) {
		return fmt.Sprintf("PriceStyle(%d)", int(p))
	}
	return priceStyles[p].name
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

func (p PriceStyle) Render(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	switch p {
	case PriceSymbol:
		return "€" + d.StringFixed(2)
	case PriceSuffix:
		return d.StringFixed(2) + " EUR"
	case PriceComma:
		s := d.String()
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return strings.Replace(s, ".", ",", 1)
	default:
		return d.StringFixed(2)
	}
}

// RandomPrice renders v in a style drawn uniformly from AllPrices.
func RandomPrice(src *randsrc.Source, v float64) (string, PriceStyle) {
	style := randsrc.Pick(src, AllPrices())
	return style.Render(v), style
}

// DetectPrice finds the single declared style s was rendered with and
// returns the amount it encodes.
func DetectPrice(s string) (PriceStyle, decimal.Decimal, error) {
	found := -1
	var amount string
	for _, p := range AllPrices() {
		m := priceStyles[p].pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if found >= 0 {
			return 0, decimal.Zero, fmt.Errorf("price %q matches both %s and %s", s, PriceStyle(found), p)
		}
		found = int(p)
		amount = strings.Replace(m[1], ",", ".", 1)
	}
	if found < 0 {
		return 0, decimal.Zero, fmt.Errorf("price %q matches no known style", s)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("price %q: %w", s, err)
	}
	return PriceStyle(found), d, nil
}
