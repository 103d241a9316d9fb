package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the store's flat 8% sales tax.
var DefaultTaxRate = decimal.NewFromInt(8).Div(decimal.NewFromInt(100))

// Item is what a product surface hands to the cart.
type Item struct {
	Title     string
	UnitPrice int64
	Image     string
	Category  string
}

type Line struct {
	ID        string
	Title     string
	UnitPrice int64
	Image     string
	Category  string
	Quantity  int32
}

func (l Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart holds one line per distinct title. A Cart is owned by a single
// session; callers serialize access.
type Cart struct {
	lines []Line
	newID func() string
}

func New() *Cart {
	return &Cart{newID: uuid.NewString}
}

// NewWithIDs is New with a custom line id generator.
func NewWithIDs(newID func() string) *Cart {
	return &Cart{newID: newID}
}

// Add merges by title: an existing line gets quantity+1 and keeps its original
// price, image and category.
func (c *Cart) Add(item Item) Line {
	for i := range c.lines {
		if c.lines[i].Title == item.Title {
			c.lines[i].Quantity++
			return c.lines[i]
		}
	}

	line := Line{
		ID:        c.nextID(),
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Image:     item.Image,
		Category:  item.Category,
		Quantity:  1,
	}
	c.lines = append(c.lines, line)
	return line
}

// UpdateQuantity sets the quantity of line id. Non-positive quantities and
// unknown ids are ignored; it reports whether anything changed.
func (c *Cart) UpdateQuantity(id string, quantity int32) bool {
	if quantity <= 0 {
		return false
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Remove(id string) bool {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) nextID() string {
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c.newID()
}

type Totals struct {
	ItemCount int64
	Subtotal  int64
	Tax       int64
	Total     int64
}

// Summarize derives totals from lines. Tax is subtotal*rate rounded half away
// from zero to whole currency units.
func Summarize(lines []Line, taxRate decimal.Decimal) Totals {
	var t Totals
	for _, l := range lines {
		t.ItemCount += int64(l.Quantity)
		t.Subtotal += l.LineTotal()
	}
	t.Tax = decimal.NewFromInt(t.Subtotal).Mul(taxRate).Round(0).IntPart()
	t.Total = t.Subtotal + t.Tax
	return t
}
