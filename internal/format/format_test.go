package format

import (
	"testing"
	"time"

	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRender(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	cases := map[DateLayout]string{
		DateISO:      "2024-03-05 14:07:09",
		DateISOZulu:  "2024-03-05T14:07:09Z",
		DateISOLocal: "2024-03-05T14:07:09",
		DateEuropean: "05/03/2024 14:07",
		DateUS:       "03-05-2024 14:07:09",
	}
	for layout, want := range cases {
		assert.Equal(t, want, layout.Render(ts), layout.String())
	}
}

func TestDateRoundTrip(t *testing.T) {
	src := randsrc.New(42)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		ts := src.Between(end.AddDate(-3, 0, 0), end)
		for _, layout := range AllDates() {
			text := layout.Render(ts)
			got, parsed, err := DetectDate(text)
			require.NoError(t, err)
			require.Equal(t, layout, got, text)
			require.True(t, ts.Truncate(layout.Precision()).Equal(parsed), "%s -> %s", text, parsed)
		}
	}
}

func TestDetectDateRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "2024/03/05", "05.03.2024 10:00", "yesterday"} {
		_, _, err := DetectDate(s)
		assert.Error(t, err, s)
	}
}

func TestRandomDateUsesSet(t *testing.T) {
	src := randsrc.New(1)
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	seen := map[DateLayout]int{}
	for i := 0; i < 300; i++ {
		_, layout := RandomDate(src, ts, EventDates)
		seen[layout]++
	}
	assert.Len(t, seen, 3)
	assert.Zero(t, seen[DateISO])
}

func TestPriceRender(t *testing.T) {
	assert.Equal(t, "€12.50", PriceSymbol.Render(12.5))
	assert.Equal(t, "12.50 EUR", PriceSuffix.Render(12.5))
	assert.Equal(t, "12,5", PriceComma.Render(12.5))
	assert.Equal(t, "12,0", PriceComma.Render(12))
	assert.Equal(t, "12,35", PriceComma.Render(12.345))
	assert.Equal(t, "12.50", PricePlain.Render(12.499))
}

func TestPriceRoundTrip(t *testing.T) {
	src := randsrc.New(42)
	for i := 0; i < 1000; i++ {
		v := src.Float64Range(5, 720)
		want := decimal.NewFromFloat(v).Round(2)
		for _, style := range AllPrices() {
			text := style.Render(v)
			got, amount, err := DetectPrice(text)
			require.NoError(t, err)
			require.Equal(t, style, got, text)
			require.True(t, want.Equal(amount), "%s -> %s, want %s", text, amount, want)
		}
	}
}

func TestDetectPriceRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "$12.50", "12.5", "12,500", "EUR 12.50"} {
		_, _, err := DetectPrice(s)
		assert.Error(t, err, s)
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 13.6, Round1(13.55))
	assert.Equal(t, 42.13, Round2(42.125))
}
