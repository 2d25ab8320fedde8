package generator

import (
	"fmt"
	"strings"

	"github.com/Rana718/winegen/internal/format"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
)

type WineLayout string

const (
	// WineCatalog is the warehouse WINES table: region-scoped appellations
	// and WN-VINTAGE-RCODE-0001-XYZ references.
	WineCatalog WineLayout = "catalog"
	// WineProduct is the products table of the product bundle: flat
	// appellation classes and WINE-00001 references.
	WineProduct WineLayout = "product"
)

// Vocab returns the vocabulary a layout draws from.
func (l WineLayout) Vocab() *Vocabulary {
	if l == WineProduct {
		return &productVocabulary
	}
	return &catalogVocabulary
}

type wineRanges struct {
	prefix     string
	pad        int
	vintageMin int
	vintageMax int
	alcoholMin float64
	alcoholMax float64
	maxGrapes  int
	ratingMin  float64
	ratingMax  float64
	priceMin   float64
	priceMax   float64
	stockMax   int
	scoreMax   int
	suffixLen  int
}

var wineLayouts = map[WineLayout]wineRanges{
	WineCatalog: {
		prefix: "WN", pad: 4, vintageMin: 1980, vintageMax: 2025,
		alcoholMin: 11.0, alcoholMax: 16.0, maxGrapes: 3,
		ratingMin: 80.0, ratingMax: 100.0, priceMin: 5.0, priceMax: 100.0,
		stockMax: 250, scoreMax: 5, suffixLen: 3,
	},
	WineProduct: {
		prefix: "WINE", pad: 5, vintageMin: 1995, vintageMax: 2024,
		alcoholMin: 11.0, alcoholMax: 15.5, maxGrapes: 2,
		ratingMin: 78, ratingMax: 99, priceMin: 6.0, priceMax: 120.0,
		stockMax: 800, scoreMax: 3,
	},
}

type WineOptions struct {
	Count  int
	Layout WineLayout
}

type Wine struct {
	ID             int
	Reference      string
	Color          string
	Country        string
	Region         string
	Appellation    string
	Vintage        int
	Grapes         []string
	AlcoholPercent float64
	BottleSizeL    float64
	Sweetness      string
	// Tannin and Acidity are scores: 1..5 in the catalog, 1..3 in products.
	Tannin        int
	Acidity       int
	Rating        float64
	PriceEUR      float64
	Producer      string
	StockQuantity int
}

// Wines generates opts.Count wines with ids 1..Count. Region is always
// drawn from the chosen country and appellation from the chosen region.
func Wines(src *randsrc.Source, opts WineOptions) ([]Wine, error) {
	if opts.Layout == "" {
		opts.Layout = WineCatalog
	}
	if opts.Count <= 0 {
		return nil, fmt.Errorf("%w: wine count must be positive, got %d", types.ErrInvalidConfig, opts.Count)
	}
	rng, ok := wineLayouts[opts.Layout]
	if !ok {
		return nil, fmt.Errorf("%w: unknown wine layout %q", types.ErrInvalidConfig, opts.Layout)
	}
	vocab := opts.Layout.Vocab()
	fake := src.Faker()

	wines := make([]Wine, 0, opts.Count)
	for id := 1; id <= opts.Count; id++ {
		country := randsrc.Pick(src, vocab.Countries)
		region := randsrc.Pick(src, country.Regions)

		w := Wine{ID: id, Country: country.Name, Region: region.Name}
		w.Appellation = randsrc.Pick(src, vocab.AppellationsOf(country.Name, region.Name))
		w.Vintage = src.IntRange(rng.vintageMin, rng.vintageMax)
		w.Grapes = randsrc.Sample(src, vocab.Grapes, src.IntRange(1, rng.maxGrapes))
		w.AlcoholPercent = format.Round1(src.Float64Range(rng.alcoholMin, rng.alcoholMax))
		w.BottleSizeL = randsrc.Pick(src, vocab.BottleSizes)
		w.Sweetness = randsrc.Pick(src, vocab.Sweetness)
		w.Tannin = src.IntRange(1, rng.scoreMax)
		w.Acidity = src.IntRange(1, rng.scoreMax)

		if opts.Layout == WineProduct {
			w.Rating = float64(src.IntRange(int(rng.ratingMin), int(rng.ratingMax)))
		} else {
			w.Rating = format.Round1(src.Float64Range(rng.ratingMin, rng.ratingMax))
		}
		w.PriceEUR = format.Round2(src.Float64Range(rng.priceMin, rng.priceMax))

		if opts.Layout == WineProduct {
			w.Producer = fake.Company()
		} else {
			w.Producer = randsrc.Pick(src, producerHouses) + " " + fake.LastName()
		}
		w.StockQuantity = src.IntRange(0, rng.stockMax)
		w.Color = randsrc.Pick(src, vocab.Colors)
		w.Reference = reference(src, rng, w, region.Code)

		wines = append(wines, w)
	}
	return wines, nil
}

// reference builds PREFIX-VINTAGE-REGIONCODE-ID-SUFFIX when the layout has a
// random suffix, PREFIX-ID otherwise. The suffix makes collisions unlikely,
// not impossible.
func reference(src *randsrc.Source, rng wineRanges, w Wine, regionCode string) string {
	id := fmt.Sprintf("%0*d", rng.pad, w.ID)
	if rng.suffixLen == 0 {
		return rng.prefix + "-" + id
	}
	return fmt.Sprintf("%s-%d-%s-%s-%s", rng.prefix, w.Vintage, regionCode, id, src.Code(rng.suffixLen))
}

// GrapeList is the comma-joined grape composition.
func (w Wine) GrapeList() string {
	return strings.Join(w.Grapes, ", ")
}

func WineTable(name string, layout WineLayout, wines []Wine) *types.Table {
	scoreKind := types.Integer
	ratingKind := types.Real
	if layout == WineProduct {
		scoreKind = types.Text
		ratingKind = types.Integer
	}
	t := types.NewTable(name,
		types.Column{Name: "id", Kind: types.Integer},
		types.Column{Name: "reference", Kind: types.Text},
		types.Column{Name: "color", Kind: types.Text},
		types.Column{Name: "country", Kind: types.Text},
		types.Column{Name: "region", Kind: types.Text},
		types.Column{Name: "appellation", Kind: types.Text},
		types.Column{Name: "vintage", Kind: types.Integer},
		types.Column{Name: "grapes", Kind: types.Text},
		types.Column{Name: "alcohol_percent", Kind: types.Real},
		types.Column{Name: "bottle_size_l", Kind: types.Real},
		types.Column{Name: "sweetness", Kind: types.Text},
		types.Column{Name: "tannin", Kind: scoreKind},
		types.Column{Name: "acidity", Kind: scoreKind},
		types.Column{Name: "rating", Kind: ratingKind},
		types.Column{Name: "price_eur", Kind: types.Real},
		types.Column{Name: "producer", Kind: types.Text},
		types.Column{Name: "stock_quantity", Kind: types.Integer},
	)
	for _, w := range wines {
		var tannin, acidity, rating interface{} = w.Tannin, w.Acidity, w.Rating
		if layout == WineProduct {
			tannin, acidity, rating = levels[w.Tannin-1], levels[w.Acidity-1], int(w.Rating)
		}
		t.Append(w.ID, w.Reference, w.Color, w.Country, w.Region, w.Appellation, w.Vintage,
			w.GrapeList(), w.AlcoholPercent, w.BottleSizeL, w.Sweetness, tannin, acidity,
			rating, w.PriceEUR, w.Producer, w.StockQuantity)
	}
	return t
}
