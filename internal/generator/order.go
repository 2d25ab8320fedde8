package generator

import (
	"fmt"
	"time"

	"github.com/Rana718/winegen/internal/format"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
)

type OrderLayout string

const (
	// OrderWarehouse is the warehouse ORDERS table: dense ids, ISO dates over
	// the last year.
	OrderWarehouse OrderLayout = "order"
	// OrderEvent is the order event feed: ORD-<year>-000001 ids, messy dates
	// and prices, a payment method.
	OrderEvent OrderLayout = "event"
	// OrderSale is the orders table of the product bundle, with a sales
	// channel.
	OrderSale OrderLayout = "sale"
)

const saleWindowDays = 540

type OrderOptions struct {
	Count int
	// WineMax and CustMax are the wine and customer counts of the run.
	// Foreign ids are drawn from [1, WineMax] and [1, CustMax].
	WineMax int
	CustMax int
	Layout  OrderLayout
	AsOf    time.Time
	// MaxQty caps the quantity. Zero picks the layout default.
	MaxQty int
	// Year is stamped into event ids. Zero uses AsOf's year.
	Year int
}

func (o *OrderOptions) defaults() {
	if o.Layout == "" {
		o.Layout = OrderWarehouse
	}
	if o.MaxQty == 0 {
		switch o.Layout {
		case OrderWarehouse:
			o.MaxQty = 10
		default:
			o.MaxQty = 6
		}
	}
	if o.Year == 0 {
		o.Year = o.AsOf.Year()
	}
}

func (o OrderOptions) validate() error {
	if o.Count <= 0 {
		return fmt.Errorf("%w: order count must be positive, got %d", types.ErrInvalidConfig, o.Count)
	}
	if o.WineMax <= 0 {
		return fmt.Errorf("%w: wine_max must be positive, got %d", types.ErrInvalidConfig, o.WineMax)
	}
	if o.CustMax <= 0 {
		return fmt.Errorf("%w: cust_max must be positive, got %d", types.ErrInvalidConfig, o.CustMax)
	}
	switch o.Layout {
	case OrderWarehouse, OrderEvent, OrderSale:
	default:
		return fmt.Errorf("%w: unknown order layout %q", types.ErrInvalidConfig, o.Layout)
	}
	if o.MaxQty < 1 {
		return fmt.Errorf("%w: max quantity must be at least 1, got %d", types.ErrInvalidConfig, o.MaxQty)
	}
	if o.AsOf.IsZero() {
		return fmt.Errorf("%w: order generation needs a reference time", types.ErrInvalidConfig)
	}
	return nil
}

type Order struct {
	ID         int
	Code       string
	WineID     int
	CustomerID int
	Quantity   int
	Status     string

	OrderedAt   time.Time
	OrderedText string
	DateLayout  format.DateLayout

	// UnitPrice is drawn per order and never looked up from the wine, so
	// TotalPrice does not reconcile with the catalog.
	UnitPrice     float64
	TotalPrice    float64
	TotalText     string
	PriceStyle    format.PriceStyle
	PaymentMethod string
	Channel       string
}

// Orders generates opts.Count orders with ids 1..Count.
func Orders(src *randsrc.Source, opts OrderOptions) ([]Order, error) {
	opts.defaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, opts.Count)
	yearAgo := opts.AsOf.AddDate(-1, 0, 0)
	saleStart := opts.AsOf.AddDate(0, 0, -saleWindowDays)

	for id := 1; id <= opts.Count; id++ {
		o := Order{ID: id}

		switch opts.Layout {
		case OrderWarehouse:
			o.WineID = src.IntRange(1, opts.WineMax)
			o.CustomerID = src.IntRange(1, opts.CustMax)
			o.OrderedAt = src.Between(yearAgo, opts.AsOf)
			o.DateLayout = format.DateISO
			o.OrderedText = o.DateLayout.Render(o.OrderedAt)
			o.Status = randsrc.Pick(src, orderStatuses)
			o.Quantity = src.IntRange(1, opts.MaxQty)

		case OrderEvent:
			o.Quantity = src.IntRange(1, opts.MaxQty)
			o.UnitPrice = src.Float64Range(5, 120)
			o.TotalPrice = float64(o.Quantity) * o.UnitPrice
			o.Code = fmt.Sprintf("ORD-%d-%06d", opts.Year, id)
			o.WineID = src.IntRange(1, opts.WineMax)
			o.CustomerID = src.IntRange(1, opts.CustMax)
			o.OrderedAt = opts.AsOf.Add(time.Duration(id) * time.Second)
			o.OrderedText, o.DateLayout = format.RandomDate(src, o.OrderedAt, format.EventDates)
			o.TotalText, o.PriceStyle = format.RandomPrice(src, o.TotalPrice)
			o.Status = randsrc.Pick(src, eventStatuses)
			o.PaymentMethod = randsrc.Pick(src, paymentMethods)

		case OrderSale:
			o.CustomerID = src.IntRange(1, opts.CustMax)
			o.WineID = src.IntRange(1, opts.WineMax)
			o.Quantity = src.IntRange(1, opts.MaxQty)
			o.Channel = randsrc.Pick(src, salesChannels)
			o.OrderedAt = saleStart.Add(time.Duration(src.IntRange(0, saleWindowDays*24*60)) * time.Minute)
			o.DateLayout = format.DateISOLocal
			o.OrderedText = o.DateLayout.Render(o.OrderedAt)
		}

		orders = append(orders, o)
	}
	return orders, nil
}

// OrderTable lays orders out with the columns of the given layout.
func OrderTable(name string, layout OrderLayout, orders []Order) *types.Table {
	switch layout {
	case OrderEvent:
		t := types.NewTable(name,
			types.Column{Name: "order_id", Kind: types.Text},
			types.Column{Name: "wine_id", Kind: types.Integer},
			types.Column{Name: "customer_id", Kind: types.Integer},
			types.Column{Name: "quantity", Kind: types.Integer},
			types.Column{Name: "order_date", Kind: types.Text},
			types.Column{Name: "total_price", Kind: types.Text},
			types.Column{Name: "status", Kind: types.Text},
			types.Column{Name: "payment_method", Kind: types.Text},
		)
		for _, o := range orders {
			t.Append(o.Code, o.WineID, o.CustomerID, o.Quantity, o.OrderedText, o.TotalText, o.Status, o.PaymentMethod)
		}
		return t

	case OrderSale:
		t := types.NewTable(name,
			types.Column{Name: "id", Kind: types.Integer},
			types.Column{Name: "consumer_id", Kind: types.Integer},
			types.Column{Name: "product_id", Kind: types.Integer},
			types.Column{Name: "qty", Kind: types.Integer},
			types.Column{Name: "channel", Kind: types.Text},
			types.Column{Name: "order_ts", Kind: types.Text},
		)
		for _, o := range orders {
			t.Append(o.ID, o.CustomerID, o.WineID, o.Quantity, o.Channel, o.OrderedText)
		}
		return t

	default:
		t := types.NewTable(name,
			types.Column{Name: "order_id", Kind: types.Integer},
			types.Column{Name: "wine_id", Kind: types.Integer},
			types.Column{Name: "customer_id", Kind: types.Integer},
			types.Column{Name: "order_date", Kind: types.Text},
			types.Column{Name: "status", Kind: types.Text},
			types.Column{Name: "quantity", Kind: types.Integer},
		)
		for _, o := range orders {
			t.Append(o.ID, o.WineID, o.CustomerID, o.OrderedText, o.Status, o.Quantity)
		}
		return t
	}
}
