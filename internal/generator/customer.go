// Package generator builds the wine shop entities: customers, wines and
// orders. Every function takes the run's random source explicitly and draws
// from it in a fixed order, so a seed and a count pin the output.
package generator

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Rana718/winegen/internal/format"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
)

type CustomerLayout string

const (
	// CustomerShop is the customers.csv export: messy registration dates,
	// email always present.
	CustomerShop CustomerLayout = "shop"
	// CustomerWarehouse is the warehouse CUSTOMERS table: username-based
	// email and street address are sometimes missing, no registration date.
	CustomerWarehouse CustomerLayout = "warehouse"
	// CustomerConsumer is the consumers table of the product bundle.
	CustomerConsumer CustomerLayout = "consumer"
)

type CustomerOptions struct {
	Count  int
	Layout CustomerLayout
	// Locale selects the name synthesizer: "en" or "fr".
	Locale      string
	EmailDomain string
	// NullRate is the probability an optional field is left empty. Only the
	// warehouse layout has optional fields.
	NullRate float64
	// YearsBack is the length of the registration window ending at AsOf.
	YearsBack int
	AsOf      time.Time
}

func (o *CustomerOptions) defaults() {
	if o.Layout == "" {
		o.Layout = CustomerShop
	}
	if o.Locale == "" {
		o.Locale = "en"
		if o.Layout == CustomerWarehouse {
			o.Locale = "fr"
		}
	}
	if o.EmailDomain == "" {
		o.EmailDomain = "example.com"
		if o.Layout == CustomerWarehouse {
			o.EmailDomain = "gmail.com"
		}
	}
	if o.NullRate == 0 && o.Layout == CustomerWarehouse {
		o.NullRate = 0.1
	}
	if o.YearsBack == 0 {
		o.YearsBack = 3
	}
}

func (o CustomerOptions) validate() error {
	if o.Count <= 0 {
		return fmt.Errorf("%w: customer count must be positive, got %d", types.ErrInvalidConfig, o.Count)
	}
	switch o.Layout {
	case CustomerShop, CustomerWarehouse, CustomerConsumer:
	default:
		return fmt.Errorf("%w: unknown customer layout %q", types.ErrInvalidConfig, o.Layout)
	}
	if o.Locale != "en" && o.Locale != "fr" {
		return fmt.Errorf("%w: unsupported locale %q", types.ErrInvalidConfig, o.Locale)
	}
	if o.NullRate < 0 || o.NullRate > 1 {
		return fmt.Errorf("%w: null rate must be in [0, 1], got %v", types.ErrInvalidConfig, o.NullRate)
	}
	if o.YearsBack < 0 {
		return fmt.Errorf("%w: registration window must not be negative", types.ErrInvalidConfig)
	}
	if o.AsOf.IsZero() {
		return fmt.Errorf("%w: customer generation needs a reference time", types.ErrInvalidConfig)
	}
	return nil
}

type Customer struct {
	ID       int
	Name     string
	Email    *string
	Password string
	Address  *string
	Country  string
	City     string

	RegisteredAt time.Time
	// Registered is RegisteredAt as it appears in the output.
	Registered string
	DateLayout format.DateLayout
}

// Customers generates opts.Count customers with ids 1..Count.
func Customers(src *randsrc.Source, opts CustomerOptions) ([]Customer, error) {
	opts.defaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	fake := src.Faker()
	start := opts.AsOf.AddDate(-opts.YearsBack, 0, 0)
	customers := make([]Customer, 0, opts.Count)

	for id := 1; id <= opts.Count; id++ {
		c := Customer{ID: id, Name: personName(src, opts.Locale)}

		switch opts.Layout {
		case CustomerShop:
			c.Email = strPtr(Email(c.Name, src.IntRange(1, 999), opts.EmailDomain))
			c.RegisteredAt = src.Between(start, opts.AsOf)
			c.Country = randsrc.Pick(src, shopCountries)
			c.City = city(src, opts.Locale)
			c.Password = password(src)
			c.Registered, c.DateLayout = format.RandomDate(src, c.RegisteredAt, format.CustomerDates)

		case CustomerWarehouse:
			if !src.Chance(opts.NullRate) {
				c.Email = strPtr(fake.Username() + "@" + opts.EmailDomain)
			}
			if !src.Chance(opts.NullRate) {
				c.Address = strPtr(street(src, opts.Locale))
			}
			c.City = city(src, opts.Locale)
			c.Password = password(src)

		case CustomerConsumer:
			c.Email = strPtr(Email(c.Name, src.IntRange(1, 9999), opts.EmailDomain))
			c.Country = fake.Country()
			c.RegisteredAt = src.Between(start, opts.AsOf)
			c.DateLayout = format.DateISOLocal
			c.Registered = c.DateLayout.Render(c.RegisteredAt)
		}

		customers = append(customers, c)
	}
	return customers, nil
}

// CustomerTable lays customers out with the columns of the given layout.
func CustomerTable(name string, layout CustomerLayout, customers []Customer) *types.Table {
	switch layout {
	case CustomerWarehouse:
		t := types.NewTable(name,
			types.Column{Name: "customer_id", Kind: types.Integer},
			types.Column{Name: "customer_name", Kind: types.Text},
			types.Column{Name: "customer_email", Kind: types.Text, Nullable: true},
			types.Column{Name: "password", Kind: types.Text},
			types.Column{Name: "address", Kind: types.Text, Nullable: true},
			types.Column{Name: "city", Kind: types.Text},
		)
		for _, c := range customers {
			t.Append(c.ID, c.Name, nullable(c.Email), c.Password, nullable(c.Address), c.City)
		}
		return t

	case CustomerConsumer:
		t := types.NewTable(name,
			types.Column{Name: "id", Kind: types.Integer},
			types.Column{Name: "name", Kind: types.Text},
			types.Column{Name: "email", Kind: types.Text},
			types.Column{Name: "country", Kind: types.Text},
			types.Column{Name: "created_at", Kind: types.Text},
		)
		for _, c := range customers {
			t.Append(c.ID, c.Name, nullable(c.Email), c.Country, c.Registered)
		}
		return t

	default:
		t := types.NewTable(name,
			types.Column{Name: "customer_id", Kind: types.Integer},
			types.Column{Name: "customer_name", Kind: types.Text},
			types.Column{Name: "customer_email", Kind: types.Text},
			types.Column{Name: "password", Kind: types.Text},
			types.Column{Name: "registration_date", Kind: types.Text},
			types.Column{Name: "country", Kind: types.Text},
			types.Column{Name: "city", Kind: types.Text},
		)
		for _, c := range customers {
			t.Append(c.ID, c.Name, nullable(c.Email), c.Password, c.Registered, c.Country, c.City)
		}
		return t
	}
}

// SanitizeEmailName turns a display name into an email local part:
// lower-cased, spaces to dots, apostrophes dropped, then only letters, digits
// and dots kept.
func SanitizeEmailName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", ".")
	s = strings.ReplaceAll(s, "'", "")
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			return r
		}
		return -1
	}, s)
}

// Email builds name-derived addresses. Two customers with the same name only
// differ by suffix, so uniqueness is not guaranteed.
func Email(name string, suffix int, domain string) string {
	return fmt.Sprintf("%s%d@%s", SanitizeEmailName(name), suffix, domain)
}

func personName(src *randsrc.Source, locale string) string {
	if locale == "fr" {
		return randsrc.Pick(src, frenchFirstNames) + " " + randsrc.Pick(src, frenchLastNames)
	}
	return src.Faker().Name()
}

func city(src *randsrc.Source, locale string) string {
	if locale == "fr" {
		return randsrc.Pick(src, frenchCities)
	}
	return src.Faker().City()
}

func street(src *randsrc.Source, locale string) string {
	if locale == "fr" {
		return fmt.Sprintf("%d %s %s", src.IntRange(1, 250), randsrc.Pick(src, frenchStreets), randsrc.Pick(src, frenchLastNames))
	}
	return src.Faker().Street()
}

const passwordLength = 12

func password(src *randsrc.Source) string {
	return src.Faker().Password(true, true, true, true, false, passwordLength)
}

func strPtr(s string) *string {
	return &s
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
